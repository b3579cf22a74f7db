// Package operator holds the dynamic table of unary and binary operators
// the parser consults for precedence/associativity and the evaluator
// consults for dispatch (spec.md §4.4).
package operator

import "github.com/cwbudde/ruledsl/internal/value"

// Assoc is an operator's associativity.
type Assoc int

const (
	Left Assoc = iota
	Right
)

// UnaryFunc implements a prefix operator.
type UnaryFunc func(value.Value) (value.Value, error)

// BinaryFunc implements an infix operator.
type BinaryFunc func(left, right value.Value) (value.Value, error)

// BinarySpec is a registered binary operator: its precedence,
// associativity, and handler.
type BinarySpec struct {
	Precedence uint8
	Assoc      Assoc
	Func       BinaryFunc
}

// Registry is the dynamic, string-keyed table of unary and binary
// operators. Binary names may be symbolic ("+", "==") or word-shaped
// (alphabetic plus underscore only, e.g. "and", "contains").
type Registry struct {
	unary  map[string]UnaryFunc
	binary map[string]BinarySpec
}

// New returns a Registry pre-populated with the default operator set
// from spec.md §4.4.
func New() *Registry {
	r := &Registry{
		unary:  make(map[string]UnaryFunc),
		binary: make(map[string]BinarySpec),
	}
	registerDefaults(r)
	return r
}

// RegisterUnary adds or replaces a unary operator handler.
func (r *Registry) RegisterUnary(name string, fn UnaryFunc) {
	r.unary[name] = fn
}

// RegisterBinary adds or replaces a binary operator handler with its
// precedence and associativity.
func (r *Registry) RegisterBinary(name string, precedence uint8, assoc Assoc, fn BinaryFunc) {
	r.binary[name] = BinarySpec{Precedence: precedence, Assoc: assoc, Func: fn}
}

// Unary looks up a unary handler by its internal name ("!", "not", "-u",
// "+u").
func (r *Registry) Unary(name string) (UnaryFunc, bool) {
	fn, ok := r.unary[name]
	return fn, ok
}

// Binary looks up a binary operator's full spec by name.
func (r *Registry) Binary(name string) (BinarySpec, bool) {
	spec, ok := r.binary[name]
	return spec, ok
}

// IsWordOperator reports whether name is registered as a binary operator
// and spelled as a bare word (alphabetic/underscore only) rather than
// symbolic punctuation — the parser uses this to decide whether an IDENT
// token should be reinterpreted as an infix operator.
func (r *Registry) IsWordOperator(name string) bool {
	if !isWordSpelling(name) {
		return false
	}
	_, ok := r.binary[name]
	return ok
}

func isWordSpelling(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}
