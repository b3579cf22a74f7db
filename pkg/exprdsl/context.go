package exprdsl

import (
	"github.com/cwbudde/ruledsl/internal/evaluator"
	"github.com/cwbudde/ruledsl/internal/value"
)

// Context is the variable environment an expression evaluates against.
// It wraps an evaluator.Scope without exposing internal package types at
// the façade boundary.
type Context struct {
	scope *evaluator.Scope
}

// NewContext builds a Context from an initial set of bindings (nil is
// treated as empty).
func NewContext(vars map[string]value.Value) *Context {
	return &Context{scope: evaluator.NewScope(vars)}
}

// WithVar returns a new Context extending ctx with one additional
// binding, leaving ctx itself untouched — mirroring Scope's
// child-extension semantics (spec.md §3 "Scope").
func (c *Context) WithVar(name string, v value.Value) *Context {
	return &Context{scope: c.scope.Child(name, v)}
}
