package emitter

import "fmt"

// WriterError reports a violation of the emitter's own invariants: a
// break or continue outside any loop, or (checked once at Finish) a
// non-empty patch-list stack, which would mean a jump was left
// unresolved. The first comes from a program that parses fine but puts
// break or continue outside every loop. The second cannot arise from a
// well-formed parse; seeing it means the parser drove the visitor out of
// the grammar's order.
type WriterError struct {
	Msg string
}

func (e *WriterError) Error() string {
	return fmt.Sprintf("emitter error: %s", e.Msg)
}

func newWriterError(format string, args ...any) *WriterError {
	return &WriterError{Msg: fmt.Sprintf(format, args...)}
}
