package evaluator

import "fmt"

// Error is a runtime evaluation error. Unlike parser/lexer errors it
// carries no position — spec.md §7 distinguishes evaluation errors as
// message-only.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
