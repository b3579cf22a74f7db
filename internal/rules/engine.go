package rules

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/ruledsl/internal/evaluator"
	"github.com/cwbudde/ruledsl/internal/operator"
	"github.com/cwbudde/ruledsl/internal/parser"
	"github.com/cwbudde/ruledsl/internal/value"
)

// Engine runs named RuleChains against a RuleContext, weaving expression
// evaluation into the step/branch state machine of spec.md §4.9. It
// shares its operator registry with whatever expression Evaluator the
// caller built, so a chain's When/Let/Emit expressions see exactly the
// same operators and functions as standalone expression evaluation.
type Engine struct {
	ops    *operator.Registry
	eval   *evaluator.Evaluator
	chains map[string]RuleChain
	log    *zap.Logger
}

// New builds an Engine over the given operator registry and evaluator.
// A nil logger falls back to zap.NewNop().
func New(ops *operator.Registry, eval *evaluator.Evaluator, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{ops: ops, eval: eval, chains: make(map[string]RuleChain), log: log}
}

// AddChain registers a chain, replacing any existing chain of the same name.
func (e *Engine) AddChain(chain RuleChain) {
	e.chains[chain.Name] = chain
}

// WithChain is AddChain in fluent-builder form.
func (e *Engine) WithChain(chain RuleChain) *Engine {
	e.AddChain(chain)
	return e
}

// Run executes chainName's step/branch state machine to completion,
// mutating ruleCtx as Let steps fire. It returns the Emit step's Value
// (nil if the run falls off the end of a chain without emitting) and the
// full AuditLog. A failing expression aborts the run immediately: no
// partial AuditLog is returned on error, matching spec.md §7.
func (e *Engine) Run(chainName string, ruleCtx *RuleContext) (*value.Value, *AuditLog, error) {
	audit := newAuditLog()
	currentChain := chainName
	pc := 0

	for {
		chain, ok := e.chains[currentChain]
		if !ok {
			e.log.Debug("chain not found, ending run", zap.String("chain", currentChain))
			return nil, audit, nil
		}
		if pc >= len(chain.Steps) {
			return nil, audit, nil
		}
		step := chain.Steps[pc]
		scope := evaluator.NewScope(ruleCtx.Snapshot())

		e.log.Debug("processing step",
			zap.String("chain", currentChain),
			zap.Int("pc", pc),
			zap.String("step", step.Name),
		)

		switch step.Action.Kind {
		case ActionWhen:
			result, err := e.parseAndEval(step.Action.Expr, scope)
			if err != nil {
				return nil, nil, fmt.Errorf("step %q: %w", step.Name, err)
			}
			outcome := whenOutcome(result, step.Action.OnFalse)
			audit.record(step.Name, step.Action.Expr, result, outcome)
			switch outcome.Kind {
			case Continue:
				pc++
			case Branch:
				currentChain, pc = outcome.Target, 0
			}

		case ActionLet:
			result, err := e.parseAndEval(step.Action.Expr, scope)
			if err != nil {
				return nil, nil, fmt.Errorf("step %q: %w", step.Name, err)
			}
			ruleCtx.With(step.Action.Key, result)
			audit.record(step.Name, step.Action.Expr, result, Outcome{Kind: Continue})
			pc++

		case ActionEmit:
			result, err := e.parseAndEval(step.Action.Expr, scope)
			if err != nil {
				return nil, nil, fmt.Errorf("step %q: %w", step.Name, err)
			}
			audit.record(step.Name, step.Action.Expr, result, Outcome{Kind: Emit, Value: result})
			out := result
			return &out, audit, nil

		case ActionCall:
			audit.record(step.Name, "call "+step.Action.Chain, value.Null{}, Outcome{Kind: Branch, Target: step.Action.Chain})
			currentChain, pc = step.Action.Chain, 0

		default:
			return nil, nil, fmt.Errorf("step %q: unknown action kind", step.Name)
		}
	}
}

// whenOutcome implements spec.md §4.9's When semantics: Bool(true) always
// continues; Bool(false) branches if an on_false target was given, else
// continues; any non-Bool result continues (a deliberate leniency — see
// DESIGN.md's Open Question decision).
func whenOutcome(result value.Value, onFalse string) Outcome {
	b, ok := value.AsBool(result)
	if !ok {
		return Outcome{Kind: Continue}
	}
	if b {
		return Outcome{Kind: Continue}
	}
	if onFalse != "" {
		return Outcome{Kind: Branch, Target: onFalse}
	}
	return Outcome{Kind: Continue}
}

func (e *Engine) parseAndEval(expr string, scope *evaluator.Scope) (value.Value, error) {
	p, err := parser.New(expr, e.ops)
	if err != nil {
		return nil, err
	}
	ast, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return e.eval.Eval(ast, scope)
}
