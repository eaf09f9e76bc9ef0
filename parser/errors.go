package parser

import (
	"fmt"
	"text/scanner"

	"github.com/carlkingsford/toyvm/lexer"
)

// SyntaxError reports a grammar violation: an unexpected lexeme where the
// grammar required something else. No recovery is attempted; the first
// SyntaxError is fatal to the parse. Stamps every message with the
// offending token's position, the same convention a parserError
// constructor would.
type SyntaxError struct {
	Pos     scanner.Position
	Context string // e.g. "expression", "operator"
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error (%s): %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Context, e.Msg)
}

func newSyntaxError(pos scanner.Position, context, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Context: context, Msg: fmt.Sprintf(format, args...)}
}

func unexpected(lex lexer.Lexeme, context string, wanted string) *SyntaxError {
	return newSyntaxError(lex.Pos, context, "expected %s, got %s", wanted, lex.Kind)
}
