package evaluator

import "github.com/cwbudde/ruledsl/internal/value"

// Scope is a chained variable environment: lookups walk outward to the
// parent when a name is not bound locally. Lambda evaluation extends the
// enclosing Scope with a single new binding rather than mutating it, so
// sibling lambda invocations over the same closure never observe each
// other's parameter binding.
type Scope struct {
	vars   map[string]value.Value
	parent *Scope
}

// NewScope creates a root scope with the given bindings (may be nil/empty).
func NewScope(vars map[string]value.Value) *Scope {
	if vars == nil {
		vars = make(map[string]value.Value)
	}
	return &Scope{vars: vars}
}

// Child returns a new Scope with one additional binding, parented on s.
func (s *Scope) Child(name string, v value.Value) *Scope {
	return &Scope{vars: map[string]value.Value{name: v}, parent: s}
}

// Lookup resolves a name, walking outward through parent scopes.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
