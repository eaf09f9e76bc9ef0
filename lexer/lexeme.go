package lexer

import (
	"fmt"
	"text/scanner"
)

// Lexeme is an immutable (kind, payload) pair produced by the lexer and
// consumed once by the parser. At most one of the payload fields is
// meaningful; which one is determined entirely by Kind.
type Lexeme struct {
	Kind Kind
	Pos  scanner.Position

	IntPayload  int32
	RealPayload float64
	StrPayload  string
}

// DebugPrint prints a one-line human-readable rendering of the lexeme.
func (l Lexeme) DebugPrint() {
	fmt.Println(l.String())
}

func (l Lexeme) String() string {
	switch l.Kind {
	case Id:
		return fmt.Sprintf("%s:%d:%d: Id %q", l.Pos.Filename, l.Pos.Line, l.Pos.Column, l.StrPayload)
	case IntValue:
		return fmt.Sprintf("%s:%d:%d: IntValue %d", l.Pos.Filename, l.Pos.Line, l.Pos.Column, l.IntPayload)
	case RealValue:
		return fmt.Sprintf("%s:%d:%d: RealValue %g", l.Pos.Filename, l.Pos.Line, l.Pos.Column, l.RealPayload)
	case StrValue:
		return fmt.Sprintf("%s:%d:%d: StrValue %q", l.Pos.Filename, l.Pos.Line, l.Pos.Column, l.StrPayload)
	default:
		return fmt.Sprintf("%s:%d:%d: %s", l.Pos.Filename, l.Pos.Line, l.Pos.Column, l.Kind)
	}
}
