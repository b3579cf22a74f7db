package function

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cwbudde/ruledsl/internal/value"
)

// lowerCaser/upperCaser apply full Unicode case mappings, which may
// change a string's length (e.g. German ß upper-cases to SS), rather than
// strings.ToLower/ToUpper's one-rune-to-one-rune mapping. They use the
// undetermined language tag, so no language-specific rules (such as
// Turkish dotted/dotless I) apply.
var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

func registerDefaults(r *Registry) {
	r.Register("len", builtinLen)
	r.Register("lower", builtinLower)
	r.Register("upper", builtinUpper)
	r.Register("abs", builtinAbs)
	r.Register("min", builtinMin)
	r.Register("max", builtinMax)
}

func argError(name string, want string, got []value.Value) error {
	kinds := make([]string, len(got))
	for i, v := range got {
		kinds[i] = v.Type()
	}
	return fmt.Errorf("%s expects %s, got (%v)", name, want, kinds)
}

func builtinLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, argError("len", "one string, list, or struct", args)
	}
	switch v := args[0].(type) {
	case value.String:
		return value.Int(len([]rune(string(v)))), nil
	case *value.List:
		return value.Int(len(v.Items)), nil
	case *value.Struct:
		return value.Int(v.Len()), nil
	default:
		return nil, argError("len", "one string, list, or struct", args)
	}
}

func builtinLower(args []value.Value) (value.Value, error) {
	s, ok := oneString(args)
	if !ok {
		return nil, argError("lower", "one string", args)
	}
	return value.String(lowerCaser.String(s)), nil
}

func builtinUpper(args []value.Value) (value.Value, error) {
	s, ok := oneString(args)
	if !ok {
		return nil, argError("upper", "one string", args)
	}
	return value.String(upperCaser.String(s)), nil
}

func oneString(args []value.Value) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	return value.AsString(args[0])
}

func builtinAbs(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, argError("abs", "one number", args)
	}
	switch v := args[0].(type) {
	case value.Int:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case value.Float:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	default:
		return nil, argError("abs", "one number", args)
	}
}

// builtinMin/builtinMax perform pairwise numeric comparison. Same-kind
// pairs preserve their tag (Int,Int -> Int; Float,Float -> Float);
// mixed-kind pairs widen to Float, matching the '+'/'-' numeric
// promotion asymmetry documented in spec.md §9.
func builtinMin(args []value.Value) (value.Value, error) {
	return pairwiseNumeric("min", args, func(x, y float64) bool { return x <= y })
}

func builtinMax(args []value.Value) (value.Value, error) {
	return pairwiseNumeric("max", args, func(x, y float64) bool { return x >= y })
}

func pairwiseNumeric(name string, args []value.Value, pick func(x, y float64) bool) (value.Value, error) {
	if len(args) != 2 {
		return nil, argError(name, "two numbers", args)
	}
	a, b := args[0], args[1]
	fa, ok1 := value.Float64Of(a)
	fb, ok2 := value.Float64Of(b)
	if !ok1 || !ok2 {
		return nil, argError(name, "two numbers", args)
	}
	ai, aIsInt := a.(value.Int)
	bi, bIsInt := b.(value.Int)
	if aIsInt && bIsInt {
		if pick(fa, fb) {
			return ai, nil
		}
		return bi, nil
	}
	if pick(fa, fb) {
		return value.Float(fa), nil
	}
	return value.Float(fb), nil
}
