package function

import (
	"testing"

	"github.com/cwbudde/ruledsl/internal/value"
)

func call(t *testing.T, r *Registry, name string, args ...value.Value) value.Value {
	t.Helper()
	fn, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("function %q not registered", name)
	}
	v, err := fn(args)
	if err != nil {
		t.Fatalf("%s(%v) returned error: %v", name, args, err)
	}
	return v
}

func TestLenOverStringListStruct(t *testing.T) {
	r := New()
	if v := call(t, r, "len", value.String("héllo")); v != value.Int(5) {
		t.Fatalf("got %v", v)
	}
	if v := call(t, r, "len", value.NewList(value.Int(1), value.Int(2), value.Int(3))); v != value.Int(3) {
		t.Fatalf("got %v", v)
	}
	if v := call(t, r, "len", value.NewStruct(map[string]value.Value{"a": value.Int(1)})); v != value.Int(1) {
		t.Fatalf("got %v", v)
	}
}

func TestLowerUpperUnicode(t *testing.T) {
	r := New()
	if v := call(t, r, "lower", value.String("STRASSE")); v != value.String("strasse") {
		t.Fatalf("got %v", v)
	}
	if v := call(t, r, "upper", value.String("straße")); v != value.String("STRASSE") {
		t.Fatalf("got %v", v)
	}
}

func TestAbs(t *testing.T) {
	r := New()
	if v := call(t, r, "abs", value.Int(-5)); v != value.Int(5) {
		t.Fatalf("got %v", v)
	}
	if v := call(t, r, "abs", value.Float(-2.5)); v != value.Float(2.5) {
		t.Fatalf("got %v", v)
	}
}

func TestMinMaxWidening(t *testing.T) {
	r := New()
	if v := call(t, r, "min", value.Int(3), value.Int(1)); v != value.Int(1) {
		t.Fatalf("got %v", v)
	}
	if v := call(t, r, "max", value.Int(3), value.Float(4.5)); v != value.Float(4.5) {
		t.Fatalf("got %v", v)
	}
	if v := call(t, r, "min", value.Int(3), value.Float(4.5)); v != value.Float(3) {
		t.Fatalf("got %v, want widened Float(3)", v)
	}
}

func TestUserRegisteredFunction(t *testing.T) {
	r := New()
	r.Register("double", func(args []value.Value) (value.Value, error) {
		n, _ := value.AsInt(args[0])
		return value.Int(n * 2), nil
	})
	if v := call(t, r, "double", value.Int(21)); v != value.Int(42) {
		t.Fatalf("got %v", v)
	}
}
