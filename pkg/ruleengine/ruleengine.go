// Package ruleengine is the public façade over the rule-orchestration
// layer: it combines an exprdsl.Engine with a set of named rules.RuleChains
// (spec.md §4.9).
package ruleengine

import (
	"go.uber.org/zap"

	"github.com/cwbudde/ruledsl/internal/rules"
	"github.com/cwbudde/ruledsl/internal/value"
	"github.com/cwbudde/ruledsl/pkg/exprdsl"
)

// Engine runs named chains against a Context, sharing its expression
// Engine's operator and function registries so chain step expressions
// see exactly the registrations the host configured.
type Engine struct {
	expr  *exprdsl.Engine
	rules *rules.Engine
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// New builds an Engine wrapping expr. A nil logger yields no logging.
func New(expr *exprdsl.Engine, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		expr:  expr,
		rules: rules.New(expr.Operators(), expr.Evaluator(), log),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithChain registers one chain at construction time.
func WithChain(chain rules.RuleChain) Option {
	return func(e *Engine) { e.rules.AddChain(chain) }
}

// WithChains registers chains loaded from YAML (rules.LoadChains) at
// construction time.
func WithChains(chains []rules.RuleChain) Option {
	return func(e *Engine) {
		for _, c := range chains {
			e.rules.AddChain(c)
		}
	}
}

// AddChain registers (or replaces) a chain after construction.
func (e *Engine) AddChain(chain rules.RuleChain) {
	e.rules.AddChain(chain)
}

// Context is a rule-run's mutable variable bindings.
type Context = rules.RuleContext

// NewContext builds a Context from initial bindings.
func NewContext(vars map[string]value.Value) *Context {
	return rules.NewRuleContext(vars)
}

// AuditLog is the ordered record a chain run produces.
type AuditLog = rules.AuditLog

// Run executes chainName to completion against ctx, returning its
// terminal Emit value (nil if none) plus the full AuditLog (spec.md
// §4.9 "Rule API shape").
func (e *Engine) Run(chainName string, ctx *Context) (*value.Value, *AuditLog, error) {
	return e.rules.Run(chainName, ctx)
}
