package evaluator

import (
	"github.com/cwbudde/ruledsl/internal/ast"
	"github.com/cwbudde/ruledsl/internal/value"
)

// hofNames is the fixed set of call names recognized as higher-order
// built-ins before falling back to the function registry (spec.md
// §4.6). method_min/method_max are the evaluator-internal names the
// parser fuses `.min(λ)`/`.max(λ)` method sugar into; avg is `.avg(λ)`
// sugar (there is no bare `avg` built-in in the function registry).
var hofNames = map[string]bool{
	"filter": true, "map": true, "sum_by": true, "sum": true,
	"any": true, "all": true, "count": true,
	"avg": true, "method_min": true, "method_max": true,
}

// evalCall implements Call evaluation: HOF shapes are matched first
// (their lambda argument is never evaluated as an expression), then
// everything else falls through to eager-argument function-registry
// dispatch.
func (e *Evaluator) evalCall(n *ast.Call, scope *Scope) (value.Value, error) {
	if hofNames[n.Name] {
		if lambda, list, ok := e.hofShape(n.Name, n.Args); ok {
			return e.evalHOF(n.Name, list, lambda, scope)
		}
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Eval(a, scope)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	fn, ok := e.Functions.Lookup(n.Name)
	if !ok {
		return nil, newError("unknown function %q", n.Name)
	}
	return fn(args)
}

// bareListAllowed is the subset of hofNames that may be called with just
// a list and no lambda: `sum(list)`/`count(list)` (spec.md §4.6) and the
// bare `.avg()`/`.min()`/`.max()` method-sugar forms, where the identity
// function stands in for the missing lambda.
var bareListAllowed = map[string]bool{"sum": true, "count": true, "avg": true, "method_min": true, "method_max": true}

// hofShape reports whether args looks like a recognized HOF call shape
// for name: exactly (list) when name allows a bare list, or exactly
// (list, Lambda) otherwise.
func (e *Evaluator) hofShape(name string, args []ast.Expr) (lambda *ast.Lambda, list ast.Expr, ok bool) {
	switch len(args) {
	case 1:
		if !bareListAllowed[name] {
			return nil, nil, false
		}
		return nil, args[0], true
	case 2:
		lam, isLambda := args[1].(*ast.Lambda)
		if !isLambda {
			return nil, nil, false
		}
		return lam, args[0], true
	default:
		return nil, nil, false
	}
}

func (e *Evaluator) evalHOF(name string, listExpr ast.Expr, lambda *ast.Lambda, scope *Scope) (value.Value, error) {
	listVal, err := e.Eval(listExpr, scope)
	if err != nil {
		return nil, err
	}
	list, ok := listVal.(*value.List)
	if !ok {
		return nil, newError("%s expects a list, got %s", name, listVal.Type())
	}

	invoke := func(item value.Value) (value.Value, error) {
		if lambda == nil {
			return item, nil
		}
		return e.Eval(lambda.Body, scope.Child(lambda.Param, item))
	}

	switch name {
	case "filter":
		out := make([]value.Value, 0, len(list.Items))
		for _, item := range list.Items {
			keep, err := invoke(item)
			if err != nil {
				return nil, err
			}
			b, ok := value.AsBool(keep)
			if !ok {
				return nil, newError("filter predicate must yield Bool, got %s", keep.Type())
			}
			if b {
				out = append(out, item)
			}
		}
		return value.NewList(out...), nil

	case "map":
		out := make([]value.Value, len(list.Items))
		for i, item := range list.Items {
			v, err := invoke(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.NewList(out...), nil

	case "sum_by", "sum":
		sum, err := e.sumBy(list, invoke)
		if err != nil {
			return nil, err
		}
		return value.Float(sum), nil

	case "avg":
		if len(list.Items) == 0 {
			return nil, newError("avg of an empty list is undefined")
		}
		sum, err := e.sumBy(list, invoke)
		if err != nil {
			return nil, err
		}
		return value.Float(sum / float64(len(list.Items))), nil

	case "any":
		for _, item := range list.Items {
			v, err := invoke(item)
			if err != nil {
				return nil, err
			}
			b, ok := value.AsBool(v)
			if !ok {
				return nil, newError("any predicate must yield Bool, got %s", v.Type())
			}
			if b {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil

	case "all":
		for _, item := range list.Items {
			v, err := invoke(item)
			if err != nil {
				return nil, err
			}
			b, ok := value.AsBool(v)
			if !ok {
				return nil, newError("all predicate must yield Bool, got %s", v.Type())
			}
			if !b {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil

	case "count":
		if lambda == nil {
			return value.Int(len(list.Items)), nil
		}
		n := 0
		for _, item := range list.Items {
			v, err := invoke(item)
			if err != nil {
				return nil, err
			}
			b, ok := value.AsBool(v)
			if !ok {
				return nil, newError("count predicate must yield Bool, got %s", v.Type())
			}
			if b {
				n++
			}
		}
		return value.Int(n), nil

	case "method_min", "method_max":
		return e.reduceMinMax(name, list, invoke)

	default:
		return nil, newError("unrecognized higher-order call %q", name)
	}
}

func (e *Evaluator) sumBy(list *value.List, invoke func(value.Value) (value.Value, error)) (float64, error) {
	var sum float64
	for _, item := range list.Items {
		v, err := invoke(item)
		if err != nil {
			return 0, err
		}
		f, ok := value.Float64Of(v)
		if !ok {
			return 0, newError("sum_by body must yield a number, got %s", v.Type())
		}
		sum += f
	}
	return sum, nil
}

// reduceMinMax implements `.min(λ)`/`.max(λ)` method sugar: the min/max
// of the mapped values, not a pairwise two-argument comparison.
func (e *Evaluator) reduceMinMax(name string, list *value.List, invoke func(value.Value) (value.Value, error)) (value.Value, error) {
	if len(list.Items) == 0 {
		return nil, newError("%s of an empty list is undefined", name)
	}
	var best value.Value
	var bestF float64
	for i, item := range list.Items {
		v, err := invoke(item)
		if err != nil {
			return nil, err
		}
		f, ok := value.Float64Of(v)
		if !ok {
			return nil, newError("%s body must yield a number, got %s", name, v.Type())
		}
		if i == 0 || (name == "method_min" && f < bestF) || (name == "method_max" && f > bestF) {
			best, bestF = v, f
		}
	}
	return best, nil
}
