package exprdsl

import "fmt"

// Stage identifies which phase of compile-then-run produced an Error.
type Stage int

const (
	StageParse Stage = iota
	StageEval
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageEval:
		return "eval"
	default:
		return "unknown"
	}
}

// Error wraps a parse-time or evaluation-time failure under one uniform
// kind, so callers do not need to type-switch between lexer.Error,
// parser.Error, and evaluator.Error (spec.md §7 "The façade wraps both
// under a single error kind for uniform propagation").
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
