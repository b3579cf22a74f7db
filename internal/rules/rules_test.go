package rules

import (
	"testing"

	"github.com/cwbudde/ruledsl/internal/evaluator"
	"github.com/cwbudde/ruledsl/internal/function"
	"github.com/cwbudde/ruledsl/internal/operator"
	"github.com/cwbudde/ruledsl/internal/value"
)

func newTestEngine() *Engine {
	ops := operator.New()
	ev := evaluator.New(ops, function.New())
	return New(ops, ev, nil)
}

// TestPricingDiscountScenario reproduces spec.md §10 S4: a non-VIP user
// with a cart totaling 110.0 should receive the 0.15 "big cart" discount
// via the pricing -> non_vip -> small_cart chain trio.
func TestPricingDiscountScenario(t *testing.T) {
	e := newTestEngine()
	e.AddChain(NewChain("pricing").
		WhenElse("user.is_vip", "non_vip").
		Emit("0.2").
		Build())
	e.AddChain(NewChain("non_vip").
		WhenElse("sum_by(cart, i => i.price) > 100", "small_cart").
		Emit("0.15").
		Build())
	e.AddChain(NewChain("small_cart").
		Emit("0.05").
		Build())

	cart := value.NewList(
		value.NewStruct(map[string]value.Value{"price": value.Float(30)}),
		value.NewStruct(map[string]value.Value{"price": value.Float(25)}),
		value.NewStruct(map[string]value.Value{"price": value.Float(55)}),
	)
	ctx := NewRuleContext(map[string]value.Value{
		"user": value.NewStruct(map[string]value.Value{"is_vip": value.Bool(false)}),
		"cart": cart,
	})

	result, audit, err := e.Run("pricing", ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || *result != value.Float(0.15) {
		t.Fatalf("got %v, want Float(0.15)", result)
	}
	if len(audit.Events) == 0 {
		t.Fatal("expected a non-empty audit log")
	}
	last := audit.Events[len(audit.Events)-1]
	if last.Outcome.Kind != Emit {
		t.Fatalf("last event outcome = %v, want Emit", last.Outcome.Kind)
	}
}

func TestSmallCartFallsThroughToThirdChain(t *testing.T) {
	e := newTestEngine()
	e.AddChain(NewChain("pricing").
		WhenElse("user.is_vip", "non_vip").
		Emit("0.2").
		Build())
	e.AddChain(NewChain("non_vip").
		WhenElse("sum_by(cart, i => i.price) > 100", "small_cart").
		Emit("0.15").
		Build())
	e.AddChain(NewChain("small_cart").
		Emit("0.05").
		Build())

	cart := value.NewList(value.NewStruct(map[string]value.Value{"price": value.Float(10)}))
	ctx := NewRuleContext(map[string]value.Value{
		"user": value.NewStruct(map[string]value.Value{"is_vip": value.Bool(false)}),
		"cart": cart,
	})

	result, _, err := e.Run("pricing", ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || *result != value.Float(0.05) {
		t.Fatalf("got %v, want Float(0.05)", result)
	}
}

func TestVipShortCircuitsToFirstEmit(t *testing.T) {
	e := newTestEngine()
	e.AddChain(NewChain("pricing").
		WhenElse("user.is_vip", "non_vip").
		Emit("0.2").
		Build())
	e.AddChain(NewChain("non_vip").Emit("0.15").Build())

	ctx := NewRuleContext(map[string]value.Value{
		"user": value.NewStruct(map[string]value.Value{"is_vip": value.Bool(true)}),
	})
	result, _, err := e.Run("pricing", ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || *result != value.Float(0.2) {
		t.Fatalf("got %v, want Float(0.2)", result)
	}
}

func TestLetMutatesContextForLaterSteps(t *testing.T) {
	e := newTestEngine()
	e.AddChain(NewChain("main").
		Let("doubled", "x * 2").
		Emit("doubled + 1").
		Build())
	ctx := NewRuleContext(map[string]value.Value{"x": value.Int(10)})
	result, audit, err := e.Run("main", ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || *result != value.Float(21) {
		t.Fatalf("got %v, want Float(21)", result)
	}
	v, ok := ctx.Get("doubled")
	if !ok || v != value.Float(20) {
		t.Fatalf("ctx[doubled] = %v", v)
	}
	if len(audit.Events) != 2 {
		t.Fatalf("got %d audit events, want 2", len(audit.Events))
	}
}

func TestCallIsTailBranchNotStackedCall(t *testing.T) {
	e := newTestEngine()
	e.AddChain(NewChain("a").
		Call("b").
		Emit("99"). // unreachable: Call replaces the current chain
		Build())
	e.AddChain(NewChain("b").Emit("1").Build())

	result, _, err := e.Run("a", NewRuleContext(nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || *result != value.Int(1) {
		t.Fatalf("got %v, want Int(1) — Call must not return to chain a", result)
	}
}

func TestNonBoolWhenContinues(t *testing.T) {
	e := newTestEngine()
	e.AddChain(NewChain("main").
		WhenElse("42", "elsewhere").
		Emit(`"reached"`).
		Build())
	result, _, err := e.Run("main", NewRuleContext(nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || *result != value.String("reached") {
		t.Fatalf("got %v, want String(reached)", result)
	}
}

func TestFailingExpressionAbortsWithNoPartialAudit(t *testing.T) {
	e := newTestEngine()
	e.AddChain(NewChain("main").
		Let("x", "undefined_ident").
		Emit("x").
		Build())
	_, audit, err := e.Run("main", NewRuleContext(nil))
	if err == nil {
		t.Fatal("expected an error")
	}
	if audit != nil {
		t.Fatalf("expected a nil audit log on failure, got %v", audit)
	}
}

func TestMissingChainEndsRunWithNilResult(t *testing.T) {
	result, audit, err := newTestEngine().Run("nonexistent", NewRuleContext(nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != nil {
		t.Fatalf("got %v, want nil", result)
	}
	if len(audit.Events) != 0 {
		t.Fatalf("got %d events, want 0", len(audit.Events))
	}
}

func TestLoadChainsFromYAML(t *testing.T) {
	raw := []byte(`
chains:
  - name: pricing
    steps:
      - when: "user.is_vip"
        on_false: non_vip
      - emit: "0.2"
  - name: non_vip
    steps:
      - emit: "0.15"
`)
	chains, err := LoadChains(raw)
	if err != nil {
		t.Fatalf("LoadChains: %v", err)
	}
	if len(chains) != 2 {
		t.Fatalf("got %d chains, want 2", len(chains))
	}
	if chains[0].Name != "pricing" || len(chains[0].Steps) != 2 {
		t.Fatalf("got %+v", chains[0])
	}
	if chains[0].Steps[0].Action.Kind != ActionWhen || chains[0].Steps[0].Action.OnFalse != "non_vip" {
		t.Fatalf("got %+v", chains[0].Steps[0])
	}
	if chains[0].Steps[0].Name != "when" {
		t.Fatalf("default step name = %q, want when", chains[0].Steps[0].Name)
	}

	e := newTestEngine()
	for _, c := range chains {
		e.AddChain(c)
	}
	result, _, err := e.Run("pricing", NewRuleContext(map[string]value.Value{
		"user": value.NewStruct(map[string]value.Value{"is_vip": value.Bool(true)}),
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result == nil || *result != value.Float(0.2) {
		t.Fatalf("got %v, want Float(0.2)", result)
	}
}
