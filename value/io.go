package value

import (
	"fmt"
	"strconv"
)

// formatReal renders a float64 as a canonical decimal expansion: the
// shortest one that round-trips, and never in exponential notation
// (the 'f' verb, not 'g', so large or small magnitudes still print as
// plain decimal rather than "1e+21").
func formatReal(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatForWrite renders v the way a `write` statement does: Int and Real
// in decimal, Bool as the literal strings true/false, Str verbatim.
func FormatForWrite(v Value) string {
	return v.String()
}

// ParseForRead parses a single whitespace-delimited token read from the
// input stream according to the declared type tag.
func ParseForRead(tag Tag, token string) (Value, error) {
	switch tag {
	case Int:
		n, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("cannot parse %q as int: %w", token, err)
		}
		return NewInt(int32(n)), nil
	case Real:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, fmt.Errorf("cannot parse %q as real: %w", token, err)
		}
		return NewReal(f), nil
	case Bool:
		switch token {
		case "true":
			return NewBool(true), nil
		case "false":
			return NewBool(false), nil
		default:
			return Value{}, fmt.Errorf("cannot parse %q as boolean", token)
		}
	case Str:
		return NewStr(token), nil
	default:
		panic("value: ParseForRead: unknown tag")
	}
}
