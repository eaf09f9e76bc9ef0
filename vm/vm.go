// Package vm implements a stack-based virtual machine: a
// fetch-execute-advance loop over a flat instruction vector, an operand
// stack of values and variable references, and a variable environment.
//
// The main loop fetches the current instruction, dispatches on its
// opcode via a switch, and advances unless the handler already moved
// the cursor itself. This generalizes a linked-list-cursor dispatch loop
// to a program counter over a slice, and "handler returns the next
// node" to "handler reports whether it already set pc". The operand
// stack is a slice of value/reference elements used as a stack (append
// to push, reslice to pop).
package vm

import (
	"bufio"
	"io"

	"github.com/carlkingsford/toyvm/emitter"
	"github.com/carlkingsford/toyvm/value"
)

// element is one operand-stack slot: either an owned Value (ref == nil)
// or a Reference, a mutable borrow into a variable's slot (ref != nil).
// Assignment requires a reference on the left; every other operator
// dereferences transparently via valueOf.
type element struct {
	val value.Value
	ref *value.Value
}

func owned(v value.Value) element    { return element{val: v} }
func reference(v *value.Value) element { return element{ref: v} }

func (e element) valueOf() value.Value {
	if e.ref != nil {
		return *e.ref
	}
	return e.val
}

// VM executes a single compiled program against a pair of byte streams.
type VM struct {
	code []emitter.Instruction
	env  map[string]*value.Value
	st   []element
	pc   int

	in  *bufio.Scanner
	out io.Writer
}

// Run executes code to completion, reading read-statement tokens from
// stdin and writing write-statement output to stdout. It returns the
// first error encountered; execution does not continue past it.
func Run(code []emitter.Instruction, stdin io.Reader, stdout io.Writer) error {
	sc := bufio.NewScanner(stdin)
	sc.Split(bufio.ScanWords)
	m := &VM{
		code: code,
		env:  make(map[string]*value.Value),
		in:   sc,
		out:  stdout,
	}
	for m.pc < len(m.code) {
		jumped, err := m.exec(m.code[m.pc])
		if err != nil {
			return err
		}
		if !jumped {
			m.pc++
		}
	}
	return nil
}

func (m *VM) push(e element) {
	m.st = append(m.st, e)
}

func (m *VM) pop() (element, error) {
	if len(m.st) == 0 {
		return element{}, newRuntimeError("operand stack underflow")
	}
	e := m.st[len(m.st)-1]
	m.st = m.st[:len(m.st)-1]
	return e, nil
}

// exec runs one instruction. The bool return reports whether pc was
// already set by this instruction (a taken jump), so Run must not
// additionally increment it.
func (m *VM) exec(ins emitter.Instruction) (bool, error) {
	switch ins.Op {
	case emitter.DefineVariable:
		return false, m.execDefineVariable(ins)
	case emitter.Read:
		return false, m.execRead(ins)
	case emitter.Write:
		return false, m.execWrite()
	case emitter.Pop:
		_, err := m.pop()
		return false, err
	case emitter.InvokeConstant:
		m.push(owned(ins.Const))
		return false, nil
	case emitter.InvokeVariable:
		return false, m.execInvokeVariable(ins)
	case emitter.BinaryOp:
		return false, m.execBinaryOp(ins)
	case emitter.UnaryOp:
		return false, m.execUnaryOp(ins)
	case emitter.Jump:
		m.pc = ins.Target
		return true, nil
	case emitter.JumpIfFalse:
		return m.execConditionalJump(ins, false)
	case emitter.JumpIfTrue:
		return m.execConditionalJump(ins, true)
	case emitter.NoOp:
		return false, nil
	default:
		return false, newRuntimeError("unknown opcode %s", ins.Op)
	}
}

func (m *VM) execDefineVariable(ins emitter.Instruction) error {
	if _, exists := m.env[ins.Name]; exists {
		return newRuntimeError("variable %q redeclared", ins.Name)
	}
	if err := value.CheckInitializer(ins.Type, ins.Const); err != nil {
		return err
	}
	v := ins.Const
	m.env[ins.Name] = &v
	return nil
}

func (m *VM) execInvokeVariable(ins emitter.Instruction) error {
	slot, ok := m.env[ins.Name]
	if !ok {
		return newRuntimeError("undeclared variable %q", ins.Name)
	}
	m.push(reference(slot))
	return nil
}

func (m *VM) execBinaryOp(ins emitter.Instruction) error {
	right, err := m.pop()
	if err != nil {
		return err
	}
	left, err := m.pop()
	if err != nil {
		return err
	}

	if ins.BinOp == value.OpAssign {
		if left.ref == nil {
			return newRuntimeError("assignment target is not a variable")
		}
		coerced, err := value.CoerceAssign(left.ref.Tag(), right.valueOf())
		if err != nil {
			return err
		}
		*left.ref = coerced
		m.push(owned(coerced))
		return nil
	}

	result, err := value.EvalBinary(ins.BinOp, left.valueOf(), right.valueOf())
	if err != nil {
		return err
	}
	m.push(owned(result))
	return nil
}

func (m *VM) execUnaryOp(ins emitter.Instruction) error {
	operand, err := m.pop()
	if err != nil {
		return err
	}
	result, err := value.EvalUnary(ins.UnOp, operand.valueOf())
	if err != nil {
		return err
	}
	m.push(owned(result))
	return nil
}

func (m *VM) execConditionalJump(ins emitter.Instruction, jumpOn bool) (bool, error) {
	operand, err := m.pop()
	if err != nil {
		return false, err
	}
	v := operand.valueOf()
	if v.Tag() != value.Bool {
		return false, newRuntimeError("jump condition must be bool, got %s", v.Tag())
	}
	if v.Bool() == jumpOn {
		m.pc = ins.Target
		return true, nil
	}
	return false, nil
}

func (m *VM) execRead(ins emitter.Instruction) error {
	slot, ok := m.env[ins.Name]
	if !ok {
		return newRuntimeError("undeclared variable %q", ins.Name)
	}
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return newRuntimeError("read %q: %v", ins.Name, err)
		}
		return newRuntimeError("read %q: end of input", ins.Name)
	}
	v, err := value.ParseForRead(slot.Tag(), m.in.Text())
	if err != nil {
		return newRuntimeError("read %q: %v", ins.Name, err)
	}
	*slot = v
	return nil
}

func (m *VM) execWrite() error {
	operand, err := m.pop()
	if err != nil {
		return err
	}
	_, err = io.WriteString(m.out, value.FormatForWrite(operand.valueOf()))
	return err
}
