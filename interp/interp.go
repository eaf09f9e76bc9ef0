// Package interp wires the pipeline together: lexer (internal to parser)
// -> parser -> emitter -> vm, exposing interpret(code, stdin, stdout) as
// a single entry point.
package interp

import (
	"io"

	"github.com/carlkingsford/toyvm/emitter"
	"github.com/carlkingsford/toyvm/vm"
)

// Interpret compiles code and executes it, reading read-statement
// tokens from stdin and writing write-statement output to stdout. It
// returns the first error from compilation or execution; the two
// phases never overlap, the instruction vector is only ever read once
// it's fully built.
func Interpret(code io.Reader, stdin io.Reader, stdout io.Writer) error {
	return InterpretNamed("<input>", code, stdin, stdout)
}

// InterpretNamed is Interpret with an explicit source name, used for
// position information in lexical/syntax error messages when the
// source is a real file opened by a CLI driver.
func InterpretNamed(filename string, code io.Reader, stdin io.Reader, stdout io.Writer) error {
	instructions, err := emitter.Compile(filename, code)
	if err != nil {
		return err
	}
	return vm.Run(instructions, stdin, stdout)
}
