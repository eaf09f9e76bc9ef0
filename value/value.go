package value

import "fmt"

// Value is a tagged union over the four runtime types. Exactly one of b,
// i, r, s is meaningful, selected by Tag.
type Value struct {
	tag Tag
	b   bool
	i   int32
	r   float64
	s   string
}

// Default returns the zero value for a declared type: false, 0, 0.0, "".
func Default(t Tag) Value {
	switch t {
	case Bool:
		return Value{tag: Bool}
	case Int:
		return Value{tag: Int}
	case Real:
		return Value{tag: Real}
	case Str:
		return Value{tag: Str}
	default:
		panic(fmt.Sprintf("value: Default: unknown tag %v", t))
	}
}

func NewBool(b bool) Value    { return Value{tag: Bool, b: b} }
func NewInt(i int32) Value    { return Value{tag: Int, i: i} }
func NewReal(r float64) Value { return Value{tag: Real, r: r} }
func NewStr(s string) Value   { return Value{tag: Str, s: s} }

func (v Value) Tag() Tag { return v.tag }

// Bool, Int, Real, and Str panic if called against the wrong tag. Callers
// in this module only call them after a tag check has already succeeded.
func (v Value) Bool() bool {
	if v.tag != Bool {
		panic("value: Bool() on non-bool Value")
	}
	return v.b
}

func (v Value) Int() int32 {
	if v.tag != Int {
		panic("value: Int() on non-int Value")
	}
	return v.i
}

func (v Value) Real() float64 {
	if v.tag != Real {
		panic("value: Real() on non-real Value")
	}
	return v.r
}

func (v Value) Str() string {
	if v.tag != Str {
		panic("value: Str() on non-string Value")
	}
	return v.s
}

// AsReal widens an Int or Real Value to float64; it panics on any other
// tag, since callers are expected to have already checked Tag().
func (v Value) AsReal() float64 {
	switch v.tag {
	case Int:
		return float64(v.i)
	case Real:
		return v.r
	default:
		panic("value: AsReal() on non-numeric Value")
	}
}

func (v Value) String() string {
	switch v.tag {
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Int:
		return fmt.Sprintf("%d", v.i)
	case Real:
		return formatReal(v.r)
	case Str:
		return v.s
	default:
		return "<invalid value>"
	}
}
