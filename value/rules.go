package value

// EvalBinary applies the rule for op to l and r, per the closed operator
// table. OpAssign is not handled here: assignment mutates through a
// reference rather than combining two immutable operands, and is
// special-cased by the vm package via CoerceAssign.
func EvalBinary(op BinOp, l, r Value) (Value, error) {
	switch op {
	case OpOr, OpAnd:
		return evalLogical(op, l, r)
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return evalComparison(op, l, r)
	case OpPlus, OpMinus, OpMul, OpDiv, OpMod:
		return evalArithmetic(op, l, r)
	case OpAssign:
		panic("value: EvalBinary called with OpAssign; use CoerceAssign")
	default:
		panic("value: EvalBinary: unknown op")
	}
}

// EvalUnary applies the rule for op to v.
func EvalUnary(op UnOp, v Value) (Value, error) {
	switch op {
	case OpNot:
		if v.tag != Bool {
			return Value{}, newTypeError("not requires a bool operand, got %s", v.tag)
		}
		return NewBool(!v.b), nil

	case OpUnaryPlus, OpUnaryMinus:
		if !isNumeric(v.tag) {
			return Value{}, newTypeError("unary %s requires a numeric operand, got %s", op, v.tag)
		}
		if v.tag == Int {
			if op == OpUnaryMinus {
				return NewInt(-v.i), nil
			}
			return NewInt(v.i), nil
		}
		if op == OpUnaryMinus {
			return NewReal(-v.r), nil
		}
		return NewReal(v.r), nil

	default:
		panic("value: EvalUnary: unknown op")
	}
}

// CoerceAssign converts v to the exact type of a variable slot tagged
// target, per the closed assignment table: Int:=Int, Int:=Real
// (truncating), Real:=Int, Real:=Real, Str:=Str, Bool:=Bool. Any other
// pairing is a TypeError.
func CoerceAssign(target Tag, v Value) (Value, error) {
	switch target {
	case Int:
		switch v.tag {
		case Int:
			return v, nil
		case Real:
			return NewInt(int32(v.r)), nil
		}
	case Real:
		switch v.tag {
		case Real:
			return v, nil
		case Int:
			return NewReal(float64(v.i)), nil
		}
	case Str:
		if v.tag == Str {
			return v, nil
		}
	case Bool:
		if v.tag == Bool {
			return v, nil
		}
	}
	return Value{}, newTypeError("cannot assign a %s to a %s variable", v.tag, target)
}

// CheckInitializer enforces that a declaration's initializer matches the
// declared type exactly, with no widening.
func CheckInitializer(declared Tag, v Value) error {
	if declared != v.tag {
		return &TypeMismatchError{Declared: declared, Got: v.tag}
	}
	return nil
}

func isNumeric(t Tag) bool {
	return t == Int || t == Real
}

func evalLogical(op BinOp, l, r Value) (Value, error) {
	if l.tag != Bool || r.tag != Bool {
		return Value{}, newTypeError("operator %s requires bool operands, got %s and %s", op, l.tag, r.tag)
	}
	switch op {
	case OpAnd:
		return NewBool(l.b && r.b), nil
	case OpOr:
		return NewBool(l.b || r.b), nil
	default:
		panic("unreachable")
	}
}

func evalComparison(op BinOp, l, r Value) (Value, error) {
	if l.tag == Str && r.tag == Str {
		return NewBool(compareStr(op, l.s, r.s)), nil
	}
	if l.tag == Bool && r.tag == Bool {
		switch op {
		case OpEq:
			return NewBool(l.b == r.b), nil
		case OpNe:
			return NewBool(l.b != r.b), nil
		default:
			return Value{}, newTypeError("operator %s does not order bool values", op)
		}
	}
	if isNumeric(l.tag) && isNumeric(r.tag) {
		return NewBool(compareNum(op, l.AsReal(), r.AsReal())), nil
	}
	return Value{}, newTypeError("operator %s not defined for %s and %s", op, l.tag, r.tag)
}

func evalArithmetic(op BinOp, l, r Value) (Value, error) {
	if l.tag == Str && r.tag == Str {
		if op == OpPlus {
			return NewStr(l.s + r.s), nil
		}
		return Value{}, newTypeError("operator %s not defined for strings", op)
	}
	if !isNumeric(l.tag) || !isNumeric(r.tag) {
		return Value{}, newTypeError("operator %s not defined for %s and %s", op, l.tag, r.tag)
	}

	if op == OpMod {
		if l.tag != Int || r.tag != Int {
			return Value{}, newTypeError("%% requires int operands, got %s and %s", l.tag, r.tag)
		}
		if r.i == 0 {
			return Value{}, &ZeroDivisionError{Op: "%"}
		}
		return NewInt(l.i % r.i), nil
	}

	if l.tag == Int && r.tag == Int {
		switch op {
		case OpPlus:
			return NewInt(l.i + r.i), nil
		case OpMinus:
			return NewInt(l.i - r.i), nil
		case OpMul:
			return NewInt(l.i * r.i), nil
		case OpDiv:
			if r.i == 0 {
				return Value{}, &ZeroDivisionError{Op: "/"}
			}
			return NewInt(l.i / r.i), nil
		}
	}

	// At least one operand is Real: widen both and produce a Real.
	lv, rv := l.AsReal(), r.AsReal()
	switch op {
	case OpPlus:
		return NewReal(lv + rv), nil
	case OpMinus:
		return NewReal(lv - rv), nil
	case OpMul:
		return NewReal(lv * rv), nil
	case OpDiv:
		return NewReal(lv / rv), nil // IEEE-754: may produce +/-Inf or NaN, no trap
	}
	panic("unreachable")
}

func compareNum(op BinOp, l, r float64) bool {
	switch op {
	case OpEq:
		return l == r
	case OpNe:
		return l != r
	case OpLt:
		return l < r
	case OpGt:
		return l > r
	case OpLe:
		return l <= r
	case OpGe:
		return l >= r
	default:
		panic("unreachable")
	}
}

func compareStr(op BinOp, l, r string) bool {
	switch op {
	case OpEq:
		return l == r
	case OpNe:
		return l != r
	case OpLt:
		return l < r
	case OpGt:
		return l > r
	case OpLe:
		return l <= r
	case OpGe:
		return l >= r
	default:
		panic("unreachable")
	}
}
