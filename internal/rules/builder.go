package rules

// ChainBuilder composes a RuleChain fluently, mirroring the Rust
// reference's RuleChainBuilder (when/when_else/let_/emit/call). Step
// names default to the action keyword (spec.md §4.9).
type ChainBuilder struct {
	name  string
	steps []RuleStep
}

// NewChain starts building a chain with the given name.
func NewChain(name string) *ChainBuilder {
	return &ChainBuilder{name: name}
}

// When appends a condition step with no branch target: a false result
// simply continues to the next step (spec.md §4.9).
func (b *ChainBuilder) When(expr string) *ChainBuilder {
	b.steps = append(b.steps, RuleStep{Name: "when", Action: RuleAction{Kind: ActionWhen, Expr: expr}})
	return b
}

// WhenElse appends a condition step that branches to onFalseChain when
// the condition evaluates to Bool(false).
func (b *ChainBuilder) WhenElse(expr, onFalseChain string) *ChainBuilder {
	b.steps = append(b.steps, RuleStep{Name: "when", Action: RuleAction{Kind: ActionWhen, Expr: expr, OnFalse: onFalseChain}})
	return b
}

// Let appends an assignment step: evaluate expr and bind it to key in
// the RuleContext.
func (b *ChainBuilder) Let(key, expr string) *ChainBuilder {
	b.steps = append(b.steps, RuleStep{Name: "let", Action: RuleAction{Kind: ActionLet, Key: key, Expr: expr}})
	return b
}

// Emit appends a terminal step: evaluate expr and end the run, yielding
// its Value.
func (b *ChainBuilder) Emit(expr string) *ChainBuilder {
	b.steps = append(b.steps, RuleStep{Name: "emit", Action: RuleAction{Kind: ActionEmit, Expr: expr}})
	return b
}

// Call appends a tail-branch step: jump to chain and continue there
// (spec.md §4.9 — not a call/return push).
func (b *ChainBuilder) Call(chain string) *ChainBuilder {
	b.steps = append(b.steps, RuleStep{Name: "call", Action: RuleAction{Kind: ActionCall, Chain: chain}})
	return b
}

// Build finalizes the chain.
func (b *ChainBuilder) Build() RuleChain {
	return RuleChain{Name: b.name, Steps: b.steps}
}
