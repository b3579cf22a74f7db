package parser

import (
	"fmt"

	"github.com/cwbudde/ruledsl/internal/lexer"
)

// Error is a parse-time error carrying the byte position it was raised
// at (spec.md §4.3).
type Error struct {
	Message string
	Pos     lexer.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func newError(pos lexer.Position, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos}
}
