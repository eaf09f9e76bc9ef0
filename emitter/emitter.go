package emitter

import (
	"io"

	"github.com/carlkingsford/toyvm/parser"
	"github.com/carlkingsford/toyvm/value"
)

// Emitter implements parser.ModelVisitor, appending bytecode to code and
// maintaining three patch-list stacks that track jump sites awaiting a
// resolved target.
type Emitter struct {
	code []Instruction

	pendingJumps []int   // JumpIfFalse/Jump indices awaiting a target (if/else)
	loopStarts   []int   // index of the current loop's condition/body start
	loopBreaks   [][]int // per-loop list of break Jump indices awaiting a target
}

// New returns an Emitter with no instructions emitted yet.
func New() *Emitter {
	return &Emitter{}
}

// Code returns the instructions emitted so far.
func (e *Emitter) Code() []Instruction {
	return e.code
}

// Finish reports a WriterError if any patch-list stack is non-empty,
// which would mean a jump was left with no resolved target. This can
// only happen if the visitor was driven out of grammar order, since a
// well-formed parse always balances every push with a pop.
func (e *Emitter) Finish() error {
	if len(e.pendingJumps) != 0 {
		return newWriterError("%d pending jump(s) unresolved at end of program", len(e.pendingJumps))
	}
	if len(e.loopStarts) != 0 {
		return newWriterError("%d loop(s) unresolved at end of program", len(e.loopStarts))
	}
	if len(e.loopBreaks) != 0 {
		return newWriterError("%d loop break list(s) unresolved at end of program", len(e.loopBreaks))
	}
	return nil
}

// Compile parses filename's contents from r, emits bytecode, and
// validates patch-list balance in one step: the usual way interp
// drives this package.
func Compile(filename string, r io.Reader) ([]Instruction, error) {
	e := New()
	if err := parser.Parse(filename, r, e); err != nil {
		return nil, err
	}
	if err := e.Finish(); err != nil {
		return nil, err
	}
	return e.Code(), nil
}

func (e *Emitter) emit(ins Instruction) int {
	e.code = append(e.code, ins)
	return len(e.code) - 1
}

func (e *Emitter) popPendingJump() (int, error) {
	if len(e.pendingJumps) == 0 {
		return 0, newWriterError("no pending jump to patch")
	}
	idx := e.pendingJumps[len(e.pendingJumps)-1]
	e.pendingJumps = e.pendingJumps[:len(e.pendingJumps)-1]
	return idx, nil
}

func (e *Emitter) popLoopStart() (int, error) {
	if len(e.loopStarts) == 0 {
		return 0, newWriterError("continue or loop end outside of any loop")
	}
	start := e.loopStarts[len(e.loopStarts)-1]
	e.loopStarts = e.loopStarts[:len(e.loopStarts)-1]
	return start, nil
}

func (e *Emitter) popLoopBreaks() ([]int, error) {
	if len(e.loopBreaks) == 0 {
		return nil, newWriterError("loop end outside of any loop")
	}
	breaks := e.loopBreaks[len(e.loopBreaks)-1]
	e.loopBreaks = e.loopBreaks[:len(e.loopBreaks)-1]
	return breaks, nil
}

// --- parser.ModelVisitor ----------------------------------------------

func (e *Emitter) VisitProgram() error      { return nil }
func (e *Emitter) VisitDeclarations() error { return nil }

func (e *Emitter) VisitVariableDeclaration(declType value.Tag, name string, initial *value.Value) error {
	v := value.Default(declType)
	if initial != nil {
		v = *initial
	}
	e.emit(Instruction{Op: DefineVariable, Name: name, Type: declType, Const: v})
	return nil
}

func (e *Emitter) VisitOperators() error { return nil }

func (e *Emitter) VisitExpressionOperator() error {
	e.emit(Instruction{Op: Pop})
	return nil
}

func (e *Emitter) VisitIf() error {
	idx := e.emit(Instruction{Op: JumpIfFalse, Target: -1})
	e.pendingJumps = append(e.pendingJumps, idx)
	return nil
}

func (e *Emitter) VisitElse() error {
	thenJump, err := e.popPendingJump()
	if err != nil {
		return err
	}
	idx := e.emit(Instruction{Op: Jump, Target: -1})
	e.pendingJumps = append(e.pendingJumps, idx)
	e.code[thenJump].Target = len(e.code)
	return nil
}

func (e *Emitter) VisitEndIf() error {
	idx, err := e.popPendingJump()
	if err != nil {
		return err
	}
	e.code[idx].Target = len(e.code)
	return nil
}

func (e *Emitter) VisitWhile() error {
	e.loopStarts = append(e.loopStarts, len(e.code))
	e.loopBreaks = append(e.loopBreaks, nil)
	return nil
}

func (e *Emitter) VisitWhileBody() error {
	idx := e.emit(Instruction{Op: JumpIfFalse, Target: -1})
	e.pendingJumps = append(e.pendingJumps, idx)
	return nil
}

func (e *Emitter) VisitEndWhile() error {
	start, err := e.popLoopStart()
	if err != nil {
		return err
	}
	e.emit(Instruction{Op: Jump, Target: start})

	idx, err := e.popPendingJump()
	if err != nil {
		return err
	}
	e.code[idx].Target = len(e.code)

	breaks, err := e.popLoopBreaks()
	if err != nil {
		return err
	}
	for _, b := range breaks {
		e.code[b].Target = len(e.code)
	}
	return nil
}

func (e *Emitter) VisitDoWhile() error {
	e.loopStarts = append(e.loopStarts, len(e.code))
	e.loopBreaks = append(e.loopBreaks, nil)
	return nil
}

func (e *Emitter) VisitEndDoWhile() error {
	start, err := e.popLoopStart()
	if err != nil {
		return err
	}
	e.emit(Instruction{Op: JumpIfTrue, Target: start})

	breaks, err := e.popLoopBreaks()
	if err != nil {
		return err
	}
	for _, b := range breaks {
		e.code[b].Target = len(e.code)
	}
	return nil
}

func (e *Emitter) VisitBreak() error {
	if len(e.loopBreaks) == 0 {
		return newWriterError("break outside of any loop")
	}
	idx := e.emit(Instruction{Op: Jump, Target: -1})
	top := len(e.loopBreaks) - 1
	e.loopBreaks[top] = append(e.loopBreaks[top], idx)
	return nil
}

func (e *Emitter) VisitContinue() error {
	if len(e.loopStarts) == 0 {
		return newWriterError("continue outside of any loop")
	}
	e.emit(Instruction{Op: Jump, Target: e.loopStarts[len(e.loopStarts)-1]})
	return nil
}

func (e *Emitter) VisitRead(name string) error {
	e.emit(Instruction{Op: Read, Name: name})
	return nil
}

func (e *Emitter) VisitWrite() error {
	e.emit(Instruction{Op: Write})
	return nil
}

func (e *Emitter) VisitVariableInvokation(name string) error {
	e.emit(Instruction{Op: InvokeVariable, Name: name})
	return nil
}

func (e *Emitter) VisitConstantInvokation(v value.Value) error {
	e.emit(Instruction{Op: InvokeConstant, Const: v})
	return nil
}

func (e *Emitter) VisitBinaryOperator(op value.BinOp) error {
	e.emit(Instruction{Op: BinaryOp, BinOp: op})
	return nil
}

func (e *Emitter) VisitUnaryOperator(op value.UnOp) error {
	e.emit(Instruction{Op: UnaryOp, UnOp: op})
	return nil
}
