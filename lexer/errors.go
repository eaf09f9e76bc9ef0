package lexer

import (
	"fmt"
	"text/scanner"
)

// LexicalError reports a malformed token, an unterminated string, or an
// unknown byte encountered while scanning.
type LexicalError struct {
	Pos scanner.Position
	Msg string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s:%d:%d: lexical error: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Msg)
}

func newLexicalError(pos scanner.Position, format string, args ...any) *LexicalError {
	return &LexicalError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
