// Package jsonvalue bridges the tagged Value model to JSON, so hosts can
// feed RuleContext bindings and Display results across a process or wire
// boundary without hand-rolling a marshaler for every Value kind.
// Parsing goes through gjson (no full unmarshal into an intermediate
// interface{} tree) and building goes through sjson (in-place path-based
// sets), matching how both libraries are meant to be used together.
package jsonvalue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/ruledsl/internal/value"
)

// FromJSON parses raw JSON into a Value. Objects become Struct, arrays
// become List, JSON null/bool/string map directly, and JSON numbers
// become Int when they have no fractional or exponent part and Float
// otherwise — mirroring the parser's Int/Float split of number literals.
func FromJSON(raw []byte) (value.Value, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("jsonvalue: invalid JSON")
	}
	return fromResult(gjson.ParseBytes(raw)), nil
}

func fromResult(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Null{}
	case gjson.True:
		return value.Bool(true)
	case gjson.False:
		return value.Bool(false)
	case gjson.String:
		return value.String(r.String())
	case gjson.Number:
		if isIntegral(r.Raw) {
			return value.Int(r.Int())
		}
		return value.Float(r.Float())
	case gjson.JSON:
		if r.IsArray() {
			return fromArray(r)
		}
		return fromObject(r)
	default:
		return value.Null{}
	}
}

func isIntegral(raw string) bool {
	for _, c := range raw {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

func fromArray(r gjson.Result) value.Value {
	var items []value.Value
	r.ForEach(func(_, v gjson.Result) bool {
		items = append(items, fromResult(v))
		return true
	})
	return value.NewList(items...)
}

func fromObject(r gjson.Result) value.Value {
	fields := make(map[string]value.Value)
	r.ForEach(func(k, v gjson.Result) bool {
		fields[k.String()] = fromResult(v)
		return true
	})
	return value.NewStruct(fields)
}

// ToJSON renders a Value as JSON bytes. A root List or Struct is built
// field-by-field via sjson's path-based sets; sjson has no notion of
// "replace the whole document" for a bare scalar root, so that one case
// falls back to encoding/json.Marshal on the unwrapped Go value.
func ToJSON(v value.Value) ([]byte, error) {
	switch t := v.(type) {
	case *value.List:
		doc := []byte("[]")
		return appendInto(doc, "", t)
	case *value.Struct:
		doc := []byte("{}")
		return appendInto(doc, "", t)
	case *value.Enum:
		doc := []byte("{}")
		return appendInto(doc, "", t)
	default:
		scalar, err := scalarGo(v)
		if err != nil {
			return nil, err
		}
		return json.Marshal(scalar)
	}
}

// scalarGo unwraps a non-collection Value into the plain Go value
// encoding/json already knows how to marshal.
func scalarGo(v value.Value) (interface{}, error) {
	switch t := v.(type) {
	case value.Null:
		return nil, nil
	case value.Bool:
		return bool(t), nil
	case value.Int:
		return int64(t), nil
	case value.Float:
		return float64(t), nil
	case value.String:
		return string(t), nil
	default:
		return nil, fmt.Errorf("jsonvalue: unsupported scalar kind %T", v)
	}
}

// appendInto writes v's contents at path into doc, recursing through
// sjson.SetBytes/SetRawBytes for nested lists, structs, and enums.
func appendInto(doc []byte, path string, v value.Value) ([]byte, error) {
	switch t := v.(type) {
	case *value.List:
		doc, err := setContainer(doc, path, "[]")
		if err != nil {
			return nil, err
		}
		for i, item := range t.Items {
			doc, err = setField(doc, path, fmt.Sprintf("%d", i), item)
			if err != nil {
				return nil, err
			}
		}
		return doc, nil
	case *value.Struct:
		doc, err := setContainer(doc, path, "{}")
		if err != nil {
			return nil, err
		}
		for _, k := range t.Keys() {
			fv, _ := t.Get(k)
			doc, err = setField(doc, path, k, fv)
			if err != nil {
				return nil, err
			}
		}
		return doc, nil
	case *value.Enum:
		doc, err := setContainer(doc, path, "{}")
		if err != nil {
			return nil, err
		}
		doc, err = setField(doc, path, "variant", value.String(t.Name))
		if err != nil {
			return nil, err
		}
		if t.Payload == nil {
			return doc, nil
		}
		return setField(doc, path, "payload", t.Payload)
	default:
		scalar, err := scalarGo(v)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return json.Marshal(scalar)
		}
		return sjson.SetBytes(doc, path, scalar)
	}
}

func setContainer(doc []byte, path, empty string) ([]byte, error) {
	if path == "" {
		return []byte(empty), nil
	}
	return sjson.SetRawBytes(doc, path, []byte(empty))
}

func setField(doc []byte, basePath, key string, v value.Value) ([]byte, error) {
	return appendInto(doc, joinPath(basePath, key), v)
}

// escapePathSegment backslash-escapes the characters sjson's dot-path
// syntax treats as special, so a Struct key containing a literal "." or
// "\" (legal JSON object keys) doesn't get mis-nested.
func escapePathSegment(key string) string {
	key = strings.ReplaceAll(key, `\`, `\\`)
	return strings.ReplaceAll(key, ".", `\.`)
}

func joinPath(base, key string) string {
	key = escapePathSegment(key)
	if base == "" {
		return key
	}
	return base + "." + key
}
