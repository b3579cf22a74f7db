// Package function holds the dynamic table of named N-ary built-in and
// user-registered functions (spec.md §4.5). Handlers receive already
// evaluated Values; they never see the AST or a Scope.
package function

import "github.com/cwbudde/ruledsl/internal/value"

// Func is a registered function's handler.
type Func func(args []value.Value) (value.Value, error)

// Registry is the dynamic, name-keyed table of functions.
type Registry struct {
	funcs map[string]Func
}

// New returns a Registry pre-populated with the default built-ins: len,
// lower, upper, abs, min, max.
func New() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	registerDefaults(r)
	return r
}

// Register adds or replaces a function handler.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup finds a handler by name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}
