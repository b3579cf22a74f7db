// Package exprdsl is the public façade over the expression DSL: parsing,
// evaluation, and the registries an embedding host extends with its own
// functions and operators (spec.md §1, §5).
package exprdsl

import (
	"github.com/cwbudde/ruledsl/internal/ast"
	"github.com/cwbudde/ruledsl/internal/evaluator"
	"github.com/cwbudde/ruledsl/internal/function"
	"github.com/cwbudde/ruledsl/internal/operator"
	"github.com/cwbudde/ruledsl/internal/parser"
	"github.com/cwbudde/ruledsl/internal/value"
)

// Engine owns one operator registry and one function registry, built
// once and logically immutable during evaluation (spec.md §5
// "Lifecycle"). It is safe to share across goroutines once construction
// (New plus any With* calls) has finished.
type Engine struct {
	ops   *operator.Registry
	funcs *function.Registry
	eval  *evaluator.Evaluator
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// New builds an Engine with the default operator and function tables
// (spec.md §4.4, §4.5), applying any Options in order.
func New(opts ...Option) *Engine {
	e := &Engine{ops: operator.New(), funcs: function.New()}
	for _, opt := range opts {
		opt(e)
	}
	e.eval = evaluator.New(e.ops, e.funcs)
	return e
}

// WithFunction registers a named function, overriding any built-in of
// the same name.
func WithFunction(name string, fn function.Func) Option {
	return func(e *Engine) { e.funcs.Register(name, fn) }
}

// WithOperator registers a binary operator with its precedence,
// associativity, and handler. Use a word spelling (e.g. "xor") to add a
// new word operator, or a symbolic spelling already in the fixed
// punctuation set to override its handler; for a symbolic spelling the
// parser keeps its fixed precedence and ignores precedence and assoc.
// The handlers of "&&", "||", "and" and "or" are never called: the
// evaluator short-circuits those operators itself.
func WithOperator(name string, precedence uint8, assoc operator.Assoc, fn operator.BinaryFunc) Option {
	return func(e *Engine) { e.ops.RegisterBinary(name, precedence, assoc, fn) }
}

// WithUnaryOperator registers a prefix operator handler.
func WithUnaryOperator(name string, fn operator.UnaryFunc) Option {
	return func(e *Engine) { e.ops.RegisterUnary(name, fn) }
}

// Operators exposes the Engine's operator registry, e.g. so a
// rules.Engine can be built sharing the exact same tables.
func (e *Engine) Operators() *operator.Registry { return e.ops }

// Functions exposes the Engine's function registry.
func (e *Engine) Functions() *function.Registry { return e.funcs }

// Evaluator exposes the Engine's Evaluator.
func (e *Engine) Evaluator() *evaluator.Evaluator { return e.eval }

// Parse compiles source into an AST without evaluating it.
func (e *Engine) Parse(source string) (ast.Expr, error) {
	p, err := parser.New(source, e.ops)
	if err != nil {
		return nil, &Error{Stage: StageParse, Err: err}
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, &Error{Stage: StageParse, Err: err}
	}
	return expr, nil
}

// Eval evaluates an already-parsed expression against ctx.
func (e *Engine) Eval(expr ast.Expr, ctx *Context) (value.Value, error) {
	v, err := e.eval.Eval(expr, ctx.scope)
	if err != nil {
		return nil, &Error{Stage: StageEval, Err: err}
	}
	return v, nil
}

// ParseAndEval parses and evaluates source in one call, the shape the
// rule interpreter uses for every step expression (spec.md §4.9).
func (e *Engine) ParseAndEval(source string, ctx *Context) (value.Value, error) {
	expr, err := e.Parse(source)
	if err != nil {
		return nil, err
	}
	return e.Eval(expr, ctx)
}
