// Command toyvm runs a toy-language program through the lexer, parser,
// emitter, and VM pipeline in the interp package.
//
// main() keeps a familiar CLI-driver shape: log.SetPrefix/log.SetFlags(0)
// for bare diagnostics, a single switch over parsed options, and
// log.Println(err) + os.Exit(1) on failure. Flag parsing uses
// getopt.BoolLong-style option registration (the same style
// openconfig-goyang's cmd/yang uses) rather than the stdlib flag
// package, since the debug-dump flags this driver adds (-dump-tokens,
// -dump-code) are exactly the kind of long-only boolean options
// getopt.Bool/getopt.BoolLong was built for.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/pborman/getopt"

	"github.com/carlkingsford/toyvm/emitter"
	"github.com/carlkingsford/toyvm/interp"
	"github.com/carlkingsford/toyvm/lexer"
)

var (
	dumpTokens = getopt.BoolLong("dump-tokens", 0, "print every lexeme and exit")
	dumpCode   = getopt.BoolLong("dump-code", 0, "print emitted bytecode and exit")
	verbose    = getopt.BoolLong("verbose", 'v', "with -dump-code, print full instruction structs")
	help       = getopt.BoolLong("help", 'h', "show usage and exit")
)

func main() {
	log.SetPrefix("toyvm: ")
	log.SetFlags(0)

	getopt.SetParameters("[FILE]")
	getopt.Parse()

	if *help {
		getopt.Usage()
		os.Exit(0)
	}

	filename, src, err := readSource(getopt.Args())
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}

	switch {
	case *dumpTokens:
		err = runDumpTokens(filename, src)
	case *dumpCode:
		err = runDumpCode(filename, src)
	default:
		err = interp.InterpretNamed(filename, bytes.NewReader(src), os.Stdin, os.Stdout)
	}
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// readSource opens args[0] if given, or reads all of os.Stdin otherwise.
func readSource(args []string) (filename string, src []byte, err error) {
	if len(args) == 0 {
		src, err = io.ReadAll(os.Stdin)
		return "<stdin>", src, err
	}
	filename = args[0]
	src, err = os.ReadFile(filename)
	return filename, src, err
}

func runDumpTokens(filename string, src []byte) error {
	lx := lexer.New(filename, bytes.NewReader(src))
	for {
		lex, err := lx.NextLexeme()
		if err != nil {
			return err
		}
		lex.DebugPrint()
		if lex.Kind == lexer.None {
			return nil
		}
	}
}

func runDumpCode(filename string, src []byte) error {
	code, err := emitter.Compile(filename, bytes.NewReader(src))
	if err != nil {
		return err
	}
	for i, ins := range code {
		if *verbose {
			fmt.Printf("%4d  ", i)
			repr.Println(ins)
			continue
		}
		fmt.Printf("%4d  ", i)
		ins.DebugPrint()
	}
	return nil
}
