// Package rules implements the rule-orchestration layer: named chains of
// steps that evaluate expressions against a mutable RuleContext, branch,
// assign, and emit, producing a linear audit trail (spec.md §4.9).
package rules

import (
	"github.com/cwbudde/ruledsl/internal/value"
)

// RuleContext is the mapping of named Values a chain run reads from and
// writes to. It is owned by exactly one Engine.Run invocation and is
// mutated only by Let steps.
type RuleContext struct {
	data map[string]value.Value
}

// NewRuleContext builds a RuleContext from the given bindings (nil is
// treated as empty).
func NewRuleContext(data map[string]value.Value) *RuleContext {
	cp := make(map[string]value.Value, len(data))
	for k, v := range data {
		cp[k] = v
	}
	return &RuleContext{data: cp}
}

// With returns ctx with one additional binding set, for fluent
// construction: rules.NewRuleContext(nil).With("user", ...).With("cart", ...).
func (c *RuleContext) With(key string, v value.Value) *RuleContext {
	c.data[key] = v
	return c
}

// Get reads a binding.
func (c *RuleContext) Get(key string) (value.Value, bool) {
	v, ok := c.data[key]
	return v, ok
}

// Snapshot returns a defensive copy of the current bindings, suitable for
// building an expression Scope without exposing the live map.
func (c *RuleContext) Snapshot() map[string]value.Value {
	cp := make(map[string]value.Value, len(c.data))
	for k, v := range c.data {
		cp[k] = v
	}
	return cp
}

// OutcomeKind distinguishes the three shapes a step's processing can take
// (spec.md §4.9).
type OutcomeKind int

const (
	Continue OutcomeKind = iota
	Branch
	Emit
)

// Outcome is the result of processing one step.
type Outcome struct {
	Kind   OutcomeKind
	Target string      // set when Kind == Branch
	Value  value.Value // set when Kind == Emit
}

// ActionKind tags a RuleAction and selects which of its fields are
// meaningful.
type ActionKind int

const (
	ActionWhen ActionKind = iota
	ActionLet
	ActionEmit
	ActionCall
)

// RuleAction describes what a RuleStep does once its expression (if any)
// is evaluated.
type RuleAction struct {
	Kind    ActionKind
	Expr    string // When, Let, Emit: the expression source
	Key     string // Let: the context key to assign
	OnFalse string // When: branch target when the condition is false ("" = none)
	Chain   string // Call: the chain to tail-branch into
}

// RuleStep pairs a human-readable name (defaults to the action keyword)
// with the action it performs.
type RuleStep struct {
	Name   string
	Action RuleAction
}

// RuleChain is a named, ordered sequence of steps.
type RuleChain struct {
	Name  string
	Steps []RuleStep
}
