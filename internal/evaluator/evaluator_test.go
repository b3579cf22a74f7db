package evaluator

import (
	"testing"

	"github.com/cwbudde/ruledsl/internal/function"
	"github.com/cwbudde/ruledsl/internal/operator"
	"github.com/cwbudde/ruledsl/internal/parser"
	"github.com/cwbudde/ruledsl/internal/value"
)

func eval(t *testing.T, src string, vars map[string]value.Value) value.Value {
	t.Helper()
	ops := operator.New()
	ev := New(ops, function.New())
	p, err := parser.New(src, ops)
	if err != nil {
		t.Fatalf("parser.New(%q): %v", src, err)
	}
	expr, err := p.ParseExpression()
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v", src, err)
	}
	v, err := ev.Eval(expr, NewScope(vars))
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	return v
}

func evalErr(t *testing.T, src string, vars map[string]value.Value) error {
	t.Helper()
	ops := operator.New()
	ev := New(ops, function.New())
	p, err := parser.New(src, ops)
	if err != nil {
		return err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return err
	}
	_, err = ev.Eval(expr, NewScope(vars))
	return err
}

func TestArithmeticPromotion(t *testing.T) {
	if v := eval(t, "1 + 2", nil); v != value.Int(3) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "1 - 2", nil); v != value.Float(-1) {
		t.Fatalf("got %v", v)
	}
}

func TestShortCircuitAndSuppressesRightError(t *testing.T) {
	v := eval(t, "false && unknown_var", nil)
	if v != value.Bool(false) {
		t.Fatalf("got %v", v)
	}
}

func TestShortCircuitOrSuppressesRightError(t *testing.T) {
	v := eval(t, "true || unknown_var", nil)
	if v != value.Bool(true) {
		t.Fatalf("got %v", v)
	}
}

func TestShortCircuitDoesNotSuppressLeftError(t *testing.T) {
	if err := evalErr(t, "unknown_var && true", nil); err == nil {
		t.Fatal("expected an error from the left operand")
	}
}

func TestStructAndMemberAccess(t *testing.T) {
	vars := map[string]value.Value{
		"user": value.NewStruct(map[string]value.Value{"name": value.String("Ada")}),
	}
	v := eval(t, "user.name", vars)
	if v != value.String("Ada") {
		t.Fatalf("got %v", v)
	}
}

func TestListIndexing(t *testing.T) {
	vars := map[string]value.Value{
		"xs": value.NewList(value.Int(10), value.Int(20), value.Int(30)),
	}
	v := eval(t, "xs[1]", vars)
	if v != value.Int(20) {
		t.Fatalf("got %v", v)
	}
}

func TestFilterHOF(t *testing.T) {
	vars := map[string]value.Value{
		"xs": value.NewList(value.Int(1), value.Int(2), value.Int(3), value.Int(4)),
	}
	got := eval(t, "filter(xs, x => x > 2)", vars)
	want := value.NewList(value.Int(3), value.Int(4))
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMapHOF(t *testing.T) {
	vars := map[string]value.Value{
		"xs": value.NewList(value.Int(1), value.Int(2), value.Int(3)),
	}
	got := eval(t, "map(xs, x => x * 2)", vars)
	want := value.NewList(value.Float(2), value.Float(4), value.Float(6))
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSumByHOF(t *testing.T) {
	cart := value.NewList(
		value.NewStruct(map[string]value.Value{"price": value.Float(30)}),
		value.NewStruct(map[string]value.Value{"price": value.Float(25)}),
		value.NewStruct(map[string]value.Value{"price": value.Float(55)}),
	)
	vars := map[string]value.Value{"cart": cart}
	got := eval(t, "sum_by(cart, i => i.price)", vars)
	if got != value.Float(110) {
		t.Fatalf("got %v", got)
	}
}

func TestSumBareListHOF(t *testing.T) {
	vars := map[string]value.Value{"xs": value.NewList(value.Int(1), value.Int(2), value.Int(3))}
	if v := eval(t, "sum(xs)", vars); v != value.Float(6) {
		t.Fatalf("got %v", v)
	}
}

func TestAnyAllHOF(t *testing.T) {
	vars := map[string]value.Value{"xs": value.NewList(value.Int(1), value.Int(2), value.Int(3))}
	if v := eval(t, "any(xs, x => x > 2)", vars); v != value.Bool(true) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "all(xs, x => x > 0)", vars); v != value.Bool(true) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "all(xs, x => x > 1)", vars); v != value.Bool(false) {
		t.Fatalf("got %v", v)
	}
}

func TestCountBareAndWithPredicate(t *testing.T) {
	vars := map[string]value.Value{"xs": value.NewList(value.Int(1), value.Int(2), value.Int(3))}
	if v := eval(t, "count(xs)", vars); v != value.Int(3) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "count(xs, x => x > 1)", vars); v != value.Int(2) {
		t.Fatalf("got %v", v)
	}
}

func TestHOFComposition(t *testing.T) {
	vars := map[string]value.Value{"xs": value.NewList(value.Int(1), value.Int(2), value.Int(3), value.Int(4))}
	got := eval(t, "map(filter(xs, x => x > 2), x => x * 10)", vars)
	want := value.NewList(value.Float(30), value.Float(40))
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMethodSugarEquivalentToHOFComposition(t *testing.T) {
	vars := map[string]value.Value{"xs": value.NewList(value.Int(1), value.Int(2), value.Int(3), value.Int(4))}
	sugar := eval(t, "xs.where(x => x > 2).select(x => x * 10)", vars)
	composed := eval(t, "map(filter(xs, x => x > 2), x => x * 10)", vars)
	if !sugar.Equal(composed) {
		t.Fatalf("sugar %v != composed %v", sugar, composed)
	}
}

func TestMethodSugarAvgMinMax(t *testing.T) {
	cart := value.NewList(
		value.NewStruct(map[string]value.Value{"price": value.Float(30)}),
		value.NewStruct(map[string]value.Value{"price": value.Float(25)}),
		value.NewStruct(map[string]value.Value{"price": value.Float(55)}),
	)
	vars := map[string]value.Value{"cart": cart}
	if v := eval(t, "cart.avg(i => i.price)", vars); v != value.Float(110.0/3.0) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "cart.min(i => i.price)", vars); v != value.Float(25) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "cart.max(i => i.price)", vars); v != value.Float(55) {
		t.Fatalf("got %v", v)
	}
}

func TestFilterRejectsNonBoolPredicate(t *testing.T) {
	vars := map[string]value.Value{"xs": value.NewList(value.Int(1))}
	if err := evalErr(t, "filter(xs, x => x)", vars); err == nil {
		t.Fatal("expected an error for a non-Bool predicate")
	}
}

func TestLambdaAtTopLevelIsError(t *testing.T) {
	if err := evalErr(t, "x => x", nil); err == nil {
		t.Fatal("expected an error for a bare top-level lambda")
	}
}

func TestWordOperatorsEvaluate(t *testing.T) {
	vars := map[string]value.Value{"xs": value.NewList(value.Int(1), value.Int(2))}
	if v := eval(t, "xs contains 1", vars); v != value.Bool(true) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "true and false", nil); v != value.Bool(false) {
		t.Fatalf("got %v", v)
	}
}

func TestEnumVariantEquality(t *testing.T) {
	if v := eval(t, "Active == Active", nil); v != value.Bool(true) {
		t.Fatalf("got %v", v)
	}
	if v := eval(t, "Discount(10) == Discount(10)", nil); v != value.Bool(true) {
		t.Fatalf("got %v", v)
	}
}
