package rules

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// stepConfig is the YAML shape of one RuleStep. Exactly one of
// When/Let/Emit/Call selects the action kind; Name defaults to that
// action's keyword when left blank, matching the builder (spec.md
// §4.9).
type stepConfig struct {
	Name string `yaml:"name,omitempty"`

	When    string `yaml:"when,omitempty"`
	OnFalse string `yaml:"on_false,omitempty"`

	Let  string `yaml:"let,omitempty"`
	Expr string `yaml:"expr,omitempty"`

	Emit string `yaml:"emit,omitempty"`

	Call string `yaml:"call,omitempty"`
}

// chainConfig is the YAML shape of one RuleChain.
type chainConfig struct {
	Name  string       `yaml:"name"`
	Steps []stepConfig `yaml:"steps"`
}

// chainsConfig is the YAML shape of a chain file: a flat list of chains,
// so one file can define an entire rule set (e.g. spec.md §10 S4's
// pricing -> non_vip -> small_cart chain trio).
type chainsConfig struct {
	Chains []chainConfig `yaml:"chains"`
}

// LoadChains parses a YAML document into RuleChains, in file order.
func LoadChains(raw []byte) ([]RuleChain, error) {
	var cfg chainsConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("rules: parsing chain config: %w", err)
	}
	chains := make([]RuleChain, len(cfg.Chains))
	for i, cc := range cfg.Chains {
		chain, err := buildChain(cc)
		if err != nil {
			return nil, fmt.Errorf("rules: chain %q: %w", cc.Name, err)
		}
		chains[i] = chain
	}
	return chains, nil
}

func buildChain(cc chainConfig) (RuleChain, error) {
	steps := make([]RuleStep, len(cc.Steps))
	for i, sc := range cc.Steps {
		step, err := buildStep(sc)
		if err != nil {
			return RuleChain{}, fmt.Errorf("step %d: %w", i, err)
		}
		steps[i] = step
	}
	return RuleChain{Name: cc.Name, Steps: steps}, nil
}

func buildStep(sc stepConfig) (RuleStep, error) {
	switch {
	case sc.When != "":
		return namedStep(sc.Name, "when", RuleAction{Kind: ActionWhen, Expr: sc.When, OnFalse: sc.OnFalse}), nil
	case sc.Let != "":
		return namedStep(sc.Name, "let", RuleAction{Kind: ActionLet, Key: sc.Let, Expr: sc.Expr}), nil
	case sc.Emit != "":
		return namedStep(sc.Name, "emit", RuleAction{Kind: ActionEmit, Expr: sc.Emit}), nil
	case sc.Call != "":
		return namedStep(sc.Name, "call", RuleAction{Kind: ActionCall, Chain: sc.Call}), nil
	default:
		return RuleStep{}, fmt.Errorf("step has none of when/let/emit/call set")
	}
}

func namedStep(name, keyword string, action RuleAction) RuleStep {
	if name == "" {
		name = keyword
	}
	return RuleStep{Name: name, Action: action}
}
