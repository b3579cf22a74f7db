// Package evaluator tree-walks an ast.Expr against a Scope, dispatching
// operators and functions through the dynamic registries (spec.md §4.6).
package evaluator

import (
	"github.com/cwbudde/ruledsl/internal/ast"
	"github.com/cwbudde/ruledsl/internal/function"
	"github.com/cwbudde/ruledsl/internal/operator"
	"github.com/cwbudde/ruledsl/internal/value"
)

// Evaluator holds the two dynamic registries consulted during Eval. It
// carries no per-run state; the same Evaluator may be reused (and, per
// spec.md §6, shared across goroutines) as long as the registries
// themselves are not mutated concurrently with evaluation.
type Evaluator struct {
	Operators *operator.Registry
	Functions *function.Registry
}

// New builds an Evaluator over the given registries.
func New(ops *operator.Registry, funcs *function.Registry) *Evaluator {
	return &Evaluator{Operators: ops, Functions: funcs}
}

// Eval evaluates expr against scope, dispatching on the node's concrete
// type. Lambda is only reachable here when it appears somewhere other
// than the recognized second argument of an HOF call — spec.md §4.6
// treats that as an error rather than a first-class value.
func (e *Evaluator) Eval(expr ast.Expr, scope *Scope) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Ident:
		v, ok := scope.Lookup(n.Name)
		if !ok {
			return nil, newError("unknown identifier %q", n.Name)
		}
		return v, nil
	case *ast.Unary:
		return e.evalUnary(n, scope)
	case *ast.Binary:
		return e.evalBinary(n, scope)
	case *ast.Member:
		return e.evalMember(n, scope)
	case *ast.Index:
		return e.evalIndex(n, scope)
	case *ast.ListLiteral:
		return e.evalListLiteral(n, scope)
	case *ast.StructLiteral:
		return e.evalStructLiteral(n, scope)
	case *ast.EnumVariant:
		return e.evalEnumVariant(n, scope)
	case *ast.Call:
		return e.evalCall(n, scope)
	case *ast.Lambda:
		return nil, newError("lambdas must be passed to higher-order functions")
	default:
		return nil, newError("unsupported expression node %T", expr)
	}
}

func (e *Evaluator) evalUnary(n *ast.Unary, scope *Scope) (value.Value, error) {
	operand, err := e.Eval(n.Expr, scope)
	if err != nil {
		return nil, err
	}
	name := unaryOpName(n.Op)
	fn, ok := e.Operators.Unary(name)
	if !ok {
		return nil, newError("unknown unary operator %q", name)
	}
	return fn(operand)
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.OpNot:
		return "!"
	case ast.OpWordNot:
		return "not"
	case ast.OpNeg:
		return "-u"
	case ast.OpPos:
		return "+u"
	default:
		return op.String()
	}
}

// evalBinary special-cases && and || for short-circuit evaluation: the
// right operand is not evaluated at all when the left side already
// decides the result, so an error in the unevaluated side never
// surfaces (spec.md §7). Every other operator evaluates both sides
// eagerly and dispatches through the operator registry.
func (e *Evaluator) evalBinary(n *ast.Binary, scope *Scope) (value.Value, error) {
	switch n.Op {
	case "&&", "and":
		left, err := e.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		lb, ok := value.AsBool(left)
		if !ok {
			return nil, newError("left operand of %q is not Bool", n.Op)
		}
		if !lb {
			return value.Bool(false), nil
		}
		right, err := e.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		rb, ok := value.AsBool(right)
		if !ok {
			return nil, newError("right operand of %q is not Bool", n.Op)
		}
		return value.Bool(rb), nil
	case "||", "or":
		left, err := e.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		lb, ok := value.AsBool(left)
		if !ok {
			return nil, newError("left operand of %q is not Bool", n.Op)
		}
		if lb {
			return value.Bool(true), nil
		}
		right, err := e.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		rb, ok := value.AsBool(right)
		if !ok {
			return nil, newError("right operand of %q is not Bool", n.Op)
		}
		return value.Bool(rb), nil
	}

	left, err := e.Eval(n.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, scope)
	if err != nil {
		return nil, err
	}
	spec, ok := e.Operators.Binary(n.Op)
	if !ok {
		return nil, newError("unknown binary operator %q", n.Op)
	}
	return spec.Func(left, right)
}

func (e *Evaluator) evalMember(n *ast.Member, scope *Scope) (value.Value, error) {
	target, err := e.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	v, ok := value.GetField(target, n.Field)
	if !ok {
		return nil, newError("no field %q on %s", n.Field, target.Type())
	}
	return v, nil
}

func (e *Evaluator) evalIndex(n *ast.Index, scope *Scope) (value.Value, error) {
	target, err := e.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(n.Index, scope)
	if err != nil {
		return nil, err
	}
	v, ok := value.GetIndex(target, idx)
	if !ok {
		return nil, newError("index %s out of range or invalid on %s", idx.String(), target.Type())
	}
	return v, nil
}

func (e *Evaluator) evalListLiteral(n *ast.ListLiteral, scope *Scope) (value.Value, error) {
	items := make([]value.Value, len(n.Items))
	for i, it := range n.Items {
		v, err := e.Eval(it, scope)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.NewList(items...), nil
}

func (e *Evaluator) evalStructLiteral(n *ast.StructLiteral, scope *Scope) (value.Value, error) {
	fields := make(map[string]value.Value, len(n.Fields))
	for _, f := range n.Fields {
		v, err := e.Eval(f.Value, scope)
		if err != nil {
			return nil, err
		}
		fields[f.Name] = v
	}
	return value.NewStruct(fields), nil
}

func (e *Evaluator) evalEnumVariant(n *ast.EnumVariant, scope *Scope) (value.Value, error) {
	if n.Payload == nil {
		return &value.Enum{Name: n.Name}, nil
	}
	payload, err := e.Eval(n.Payload, scope)
	if err != nil {
		return nil, err
	}
	return &value.Enum{Name: n.Name, Payload: payload}, nil
}
