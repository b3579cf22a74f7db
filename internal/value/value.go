// Package value implements the tagged runtime Value model shared by the
// parser, evaluator, and rule interpreter.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is the tagged sum type every expression evaluates to. Each
// concrete kind below implements it.
type Value interface {
	// Type returns one of "null","bool","int","float","string","list",
	// "struct","enum".
	Type() string
	// String renders the value in source-like notation: strings are
	// double-quoted (their contents are not escaped), lists/structs use
	// bracket/brace notation, structs iterate in sorted-key order.
	String() string
	// Equal reports deep structural equality.
	Equal(other Value) bool
}

// Null is the singleton absence-of-value.
type Null struct{}

func (Null) Type() string   { return "null" }
func (Null) String() string { return "null" }
func (Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

// Bool wraps a boolean.
type Bool bool

func (Bool) Type() string     { return "bool" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// Int wraps a 64-bit integer. Int and Float are distinct tags; '+' and
// the ordering comparisons coerce Int to Float only when the two
// operands' tags differ, while '-', '*' and '/' always yield Float (see
// internal/operator).
type Int int64

func (Int) Type() string     { return "int" }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	return ok && i == o
}

// Float wraps a 64-bit floating point number.
type Float float64

func (Float) Type() string { return "float" }
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}
func (f Float) Equal(other Value) bool {
	o, ok := other.(Float)
	return ok && f == o
}

// String wraps UTF-8 text.
type String string

func (String) Type() string     { return "string" }
func (s String) String() string { return `"` + string(s) + `"` }
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && s == o
}

// List is an ordered, duplicate-tolerant sequence of Values.
type List struct {
	Items []Value
}

func NewList(items ...Value) *List {
	return &List{Items: items}
}

func (*List) Type() string { return "list" }

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range l.Items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (l *List) Equal(other Value) bool {
	o, ok := other.(*List)
	if !ok || len(l.Items) != len(o.Items) {
		return false
	}
	for i := range l.Items {
		if !l.Items[i].Equal(o.Items[i]) {
			return false
		}
	}
	return true
}

// Struct is a mapping from unique field names to Values. Field iteration
// (Keys, String) is always in sorted-key order; this ordering is
// observable in Display and governs field iteration.
type Struct struct {
	fields map[string]Value
}

// NewStruct builds a Struct from a name->Value map.
func NewStruct(fields map[string]Value) *Struct {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &Struct{fields: cp}
}

func (*Struct) Type() string { return "struct" }

// Keys returns field names in sorted order.
func (s *Struct) Keys() []string {
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the field's value and whether it exists.
func (s *Struct) Get(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Len returns the field count.
func (s *Struct) Len() int { return len(s.fields) }

func (s *Struct) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(s.fields[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (s *Struct) Equal(other Value) bool {
	o, ok := other.(*Struct)
	if !ok || len(s.fields) != len(o.fields) {
		return false
	}
	for k, v := range s.fields {
		ov, ok := o.fields[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Enum is a named variant with an optional boxed payload. Name equality
// plus payload equality defines equality.
type Enum struct {
	Name    string
	Payload Value // nil when the variant carries no payload
}

func (*Enum) Type() string { return "enum" }

func (e *Enum) String() string {
	if e.Payload == nil {
		return e.Name
	}
	return fmt.Sprintf("%s(%s)", e.Name, e.Payload.String())
}

func (e *Enum) Equal(other Value) bool {
	o, ok := other.(*Enum)
	if !ok || e.Name != o.Name {
		return false
	}
	if e.Payload == nil || o.Payload == nil {
		return e.Payload == nil && o.Payload == nil
	}
	return e.Payload.Equal(o.Payload)
}

// GetField returns a struct field, or false for any other kind or a
// missing field.
func GetField(v Value, name string) (Value, bool) {
	s, ok := v.(*Struct)
	if !ok {
		return nil, false
	}
	return s.Get(name)
}

// GetIndex resolves (List, Int) or (Struct, String) indexing; any other
// shape returns false.
func GetIndex(target, index Value) (Value, bool) {
	switch t := target.(type) {
	case *List:
		i, ok := index.(Int)
		if !ok || int(i) < 0 || int(i) >= len(t.Items) {
			return nil, false
		}
		return t.Items[i], true
	case *Struct:
		k, ok := index.(String)
		if !ok {
			return nil, false
		}
		return t.Get(string(k))
	default:
		return nil, false
	}
}

// AsBool, AsInt, AsFloat, AsString return the inner payload only when the
// tag matches; implementers of higher-order built-ins and operator
// handlers use these to type-switch without repeating the assertion.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

func AsInt(v Value) (int64, bool) {
	i, ok := v.(Int)
	return int64(i), ok
}

func AsFloat(v Value) (float64, bool) {
	f, ok := v.(Float)
	return float64(f), ok
}

func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// IsNumeric reports whether v is an Int or a Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	default:
		return false
	}
}

// Float64Of widens an Int or Float to a float64. ok is false for any
// other kind.
func Float64Of(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}
