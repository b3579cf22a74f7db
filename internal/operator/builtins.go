package operator

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/ruledsl/internal/value"
)

// Precedence levels from spec.md §4.3. Binary short-circuit handling for
// "||"/"or" and "&&"/"and" lives in the evaluator, not here — the
// registered Func is only ever invoked once both operands are already
// evaluated.
const (
	PrecOr          uint8 = 1
	PrecAnd         uint8 = 2
	PrecEquality    uint8 = 3 // == != contains
	PrecComparison  uint8 = 4 // < <= > >=
	PrecAdditive    uint8 = 5 // + -
	PrecMultiplicative uint8 = 6 // * / %
)

func registerDefaults(r *Registry) {
	r.RegisterUnary("!", notBool)
	r.RegisterUnary("not", notBool)
	r.RegisterUnary("-u", negate)
	r.RegisterUnary("+u", identityNumeric)

	r.RegisterBinary("||", PrecOr, Left, boolOr)
	r.RegisterBinary("or", PrecOr, Left, boolOr)
	r.RegisterBinary("&&", PrecAnd, Left, boolAnd)
	r.RegisterBinary("and", PrecAnd, Left, boolAnd)

	r.RegisterBinary("==", PrecEquality, Left, equals)
	r.RegisterBinary("!=", PrecEquality, Left, notEquals)
	r.RegisterBinary("contains", PrecEquality, Left, contains)

	r.RegisterBinary("<", PrecComparison, Left, less)
	r.RegisterBinary("<=", PrecComparison, Left, lessEq)
	r.RegisterBinary(">", PrecComparison, Left, greater)
	r.RegisterBinary(">=", PrecComparison, Left, greaterEq)

	r.RegisterBinary("+", PrecAdditive, Left, add)
	r.RegisterBinary("-", PrecAdditive, Left, subtract)

	r.RegisterBinary("*", PrecMultiplicative, Left, multiply)
	r.RegisterBinary("/", PrecMultiplicative, Left, divide)
	r.RegisterBinary("%", PrecMultiplicative, Left, modulo)
}

func typeError(op string, vs ...value.Value) error {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Type()
	}
	return fmt.Errorf("operator %q does not support operand type(s) %s", op, strings.Join(names, ", "))
}

func notBool(v value.Value) (value.Value, error) {
	b, ok := value.AsBool(v)
	if !ok {
		return nil, typeError("!", v)
	}
	return value.Bool(!b), nil
}

func negate(v value.Value) (value.Value, error) {
	switch n := v.(type) {
	case value.Int:
		return -n, nil
	case value.Float:
		return -n, nil
	default:
		return nil, typeError("-u", v)
	}
}

func identityNumeric(v value.Value) (value.Value, error) {
	if !value.IsNumeric(v) {
		return nil, typeError("+u", v)
	}
	return v, nil
}

func boolOr(a, b value.Value) (value.Value, error) {
	ab, ok1 := value.AsBool(a)
	bb, ok2 := value.AsBool(b)
	if !ok1 || !ok2 {
		return nil, typeError("||", a, b)
	}
	return value.Bool(ab || bb), nil
}

func boolAnd(a, b value.Value) (value.Value, error) {
	ab, ok1 := value.AsBool(a)
	bb, ok2 := value.AsBool(b)
	if !ok1 || !ok2 {
		return nil, typeError("&&", a, b)
	}
	return value.Bool(ab && bb), nil
}

func equals(a, b value.Value) (value.Value, error) {
	return value.Bool(a.Equal(b)), nil
}

func notEquals(a, b value.Value) (value.Value, error) {
	return value.Bool(!a.Equal(b)), nil
}

func contains(a, b value.Value) (value.Value, error) {
	switch s := a.(type) {
	case value.String:
		sub, ok := value.AsString(b)
		if !ok {
			return nil, typeError("contains", a, b)
		}
		return value.Bool(strings.Contains(string(s), sub)), nil
	case *value.List:
		for _, item := range s.Items {
			if item.Equal(b) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	default:
		return nil, typeError("contains", a, b)
	}
}

// numPair widens two numeric Values to float64, reporting false if
// either operand isn't numeric.
func numPair(a, b value.Value) (float64, float64, bool) {
	x, ok1 := value.Float64Of(a)
	y, ok2 := value.Float64Of(b)
	return x, y, ok1 && ok2
}

func cmpNumeric(op string, a, b value.Value) (int, error) {
	fx, fy, ok := numPair(a, b)
	if !ok {
		return 0, typeError(op, a, b)
	}
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, fmt.Errorf("operator %q: invalid comparison with NaN", op)
	}
	switch {
	case fx < fy:
		return -1, nil
	case fx > fy:
		return 1, nil
	default:
		return 0, nil
	}
}

func cmpOrder(op string, a, b value.Value) (int, error) {
	switch x := a.(type) {
	case value.Int:
		if y, ok := b.(value.Int); ok {
			switch {
			case x < y:
				return -1, nil
			case x > y:
				return 1, nil
			default:
				return 0, nil
			}
		}
		return cmpNumeric(op, a, b)
	case value.Float:
		return cmpNumeric(op, a, b)
	case value.String:
		y, ok := b.(value.String)
		if !ok {
			return 0, typeError(op, a, b)
		}
		return strings.Compare(string(x), string(y)), nil
	case value.Bool:
		y, ok := b.(value.Bool)
		if !ok {
			return 0, typeError(op, a, b)
		}
		switch {
		case x == y:
			return 0, nil
		case !bool(x) && bool(y):
			return -1, nil
		default:
			return 1, nil
		}
	default:
		return 0, typeError(op, a, b)
	}
}

func less(a, b value.Value) (value.Value, error) {
	c, err := cmpOrder("<", a, b)
	if err != nil {
		return nil, err
	}
	return value.Bool(c < 0), nil
}

func lessEq(a, b value.Value) (value.Value, error) {
	c, err := cmpOrder("<=", a, b)
	if err != nil {
		return nil, err
	}
	return value.Bool(c <= 0), nil
}

func greater(a, b value.Value) (value.Value, error) {
	c, err := cmpOrder(">", a, b)
	if err != nil {
		return nil, err
	}
	return value.Bool(c > 0), nil
}

func greaterEq(a, b value.Value) (value.Value, error) {
	c, err := cmpOrder(">=", a, b)
	if err != nil {
		return nil, err
	}
	return value.Bool(c >= 0), nil
}

// add: Int+Int -> Int; Float or mixed -> Float; String+String ->
// concatenation.
func add(a, b value.Value) (value.Value, error) {
	if as, ok := a.(value.String); ok {
		bs, ok := b.(value.String)
		if !ok {
			return nil, typeError("+", a, b)
		}
		return as + bs, nil
	}
	ai, aok := a.(value.Int)
	bi, bok := b.(value.Int)
	if aok && bok {
		return ai + bi, nil
	}
	x, y, ok := numPair(a, b)
	if !ok {
		return nil, typeError("+", a, b)
	}
	return value.Float(x + y), nil
}

// subtract, multiply, divide: numeric only, result always Float
// (spec.md §9: this asymmetry with '+' is intentional).
func subtract(a, b value.Value) (value.Value, error) {
	x, y, ok := numPair(a, b)
	if !ok {
		return nil, typeError("-", a, b)
	}
	return value.Float(x - y), nil
}

func multiply(a, b value.Value) (value.Value, error) {
	x, y, ok := numPair(a, b)
	if !ok {
		return nil, typeError("*", a, b)
	}
	return value.Float(x * y), nil
}

func divide(a, b value.Value) (value.Value, error) {
	x, y, ok := numPair(a, b)
	if !ok {
		return nil, typeError("/", a, b)
	}
	if y == 0.0 {
		return nil, fmt.Errorf("division by zero")
	}
	return value.Float(x / y), nil
}

// modulo: Int % Int only, result Int.
func modulo(a, b value.Value) (value.Value, error) {
	ai, aok := a.(value.Int)
	bi, bok := b.(value.Int)
	if !aok || !bok {
		return nil, typeError("%", a, b)
	}
	if bi == 0 {
		return nil, fmt.Errorf("modulo by zero")
	}
	return ai % bi, nil
}
