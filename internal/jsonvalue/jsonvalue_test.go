package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/ruledsl/internal/value"
)

func TestFromJSONScalarsAndIntFloatSplit(t *testing.T) {
	v, err := FromJSON([]byte(`{"n": 3, "f": 3.5, "s": "hi", "b": true, "z": null}`))
	require.NoError(t, err)
	s := v.(*value.Struct)

	n, ok := s.Get("n")
	require.True(t, ok)
	require.Equal(t, value.Int(3), n)

	f, ok := s.Get("f")
	require.True(t, ok)
	require.Equal(t, value.Float(3.5), f)

	str, ok := s.Get("s")
	require.True(t, ok)
	require.Equal(t, value.String("hi"), str)

	b, ok := s.Get("b")
	require.True(t, ok)
	require.Equal(t, value.Bool(true), b)

	z, ok := s.Get("z")
	require.True(t, ok)
	require.IsType(t, value.Null{}, z)
}

func TestFromJSONArray(t *testing.T) {
	v, err := FromJSON([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	want := value.NewList(value.Int(1), value.Int(2), value.Int(3))
	require.True(t, v.Equal(want), "got %v, want %v", v, want)
}

func TestFromJSONInvalid(t *testing.T) {
	_, err := FromJSON([]byte(`{not json`))
	require.Error(t, err)
}

func TestToJSONRoundTripsThroughFromJSON(t *testing.T) {
	orig := value.NewStruct(map[string]value.Value{
		"name":  value.String("Ada"),
		"age":   value.Int(30),
		"score": value.Float(2.5),
		"tags":  value.NewList(value.String("a"), value.String("b")),
	})
	raw, err := ToJSON(orig)
	require.NoError(t, err)

	back, err := FromJSON(raw)
	require.NoError(t, err)
	require.True(t, back.Equal(orig), "round trip mismatch: got %v, want %v", back, orig)
}

func TestToJSONRoundTripsKeyContainingDot(t *testing.T) {
	orig := value.NewStruct(map[string]value.Value{
		"a.b": value.Int(1),
	})
	raw, err := ToJSON(orig)
	require.NoError(t, err)

	back, err := FromJSON(raw)
	require.NoError(t, err)
	require.True(t, back.Equal(orig), "round trip mismatch: got %v, want %v", back, orig)
}

func TestToJSONScalarRoot(t *testing.T) {
	raw, err := ToJSON(value.Int(42))
	require.NoError(t, err)
	require.Equal(t, "42", string(raw))
}

func TestToJSONEnumVariant(t *testing.T) {
	e := &value.Enum{Name: "Discount", Payload: value.Int(10)}
	raw, err := ToJSON(e)
	require.NoError(t, err)

	back, err := FromJSON(raw)
	require.NoError(t, err)
	s := back.(*value.Struct)

	variant, _ := s.Get("variant")
	require.Equal(t, value.String("Discount"), variant)

	payload, _ := s.Get("payload")
	require.Equal(t, value.Int(10), payload)
}
