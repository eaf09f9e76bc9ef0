package emitter

import (
	"fmt"

	"github.com/carlkingsford/toyvm/value"
)

// Instruction is one bytecode instruction. Exactly the fields relevant to
// Op are meaningful; the rest are zero. Keeping one struct shape (rather
// than a tagged union of op-specific structs) lets code be a plain
// []Instruction, addressed by integer index: a jump target is just an
// index into this slice.
type Instruction struct {
	Op Opcode

	Name string    // DefineVariable, Read, InvokeVariable
	Type value.Tag // DefineVariable: declared type

	Const value.Value // DefineVariable: default/initial value; InvokeConstant

	BinOp value.BinOp
	UnOp  value.UnOp

	Target int // Jump, JumpIfFalse, JumpIfTrue
}

// DebugPrint prints a one-line human-readable rendering, matching
// lexer.Lexeme.DebugPrint's convention.
func (i Instruction) DebugPrint() {
	fmt.Println(i.String())
}

func (i Instruction) String() string {
	switch i.Op {
	case DefineVariable:
		return fmt.Sprintf("DefineVariable %s:%s = %s", i.Name, i.Type, i.Const)
	case Read:
		return fmt.Sprintf("Read %s", i.Name)
	case InvokeConstant:
		return fmt.Sprintf("InvokeConstant %s", i.Const)
	case InvokeVariable:
		return fmt.Sprintf("InvokeVariable %s", i.Name)
	case BinaryOp:
		return fmt.Sprintf("BinaryOp %s", i.BinOp)
	case UnaryOp:
		return fmt.Sprintf("UnaryOp %s", i.UnOp)
	case Jump, JumpIfFalse, JumpIfTrue:
		return fmt.Sprintf("%s %d", i.Op, i.Target)
	default:
		return i.Op.String()
	}
}
