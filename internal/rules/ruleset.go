package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/demersaj/elements/internal/types"
)

// Rule pairs a conjunction of conditions with a route number. A rule with no
// conditions always matches.
type Rule struct {
	All   []Condition `json:"all" yaml:"all"`
	Route int         `json:"route" yaml:"route"`
}

// Matches reports whether every condition in the rule holds for ctx.
func (r *Rule) Matches(ctx map[string]any) (bool, error) {
	for i := range r.All {
		ok, err := r.All[i].Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// RuleSet is an ordered list of routing rules with a default route. Rules are
// evaluated in order; the first match wins.
type RuleSet struct {
	Rules   []Rule `json:"rules" yaml:"rules"`
	Default int    `json:"default" yaml:"default"`
}

// Validate checks every rule's conditions and route numbers against the
// allowed route range.
func (rs *RuleSet) Validate(maxRoute int) error {
	if rs.Default < 1 || rs.Default > maxRoute {
		return types.NewError(types.RULES_PARSE_FAILED,
			fmt.Sprintf("default route %d outside [1, %d]", rs.Default, maxRoute))
	}

	for i := range rs.Rules {
		rule := &rs.Rules[i]
		if rule.Route < 1 || rule.Route > maxRoute {
			return types.NewError(types.RULES_PARSE_FAILED,
				fmt.Sprintf("rule %d route %d outside [1, %d]", i+1, rule.Route, maxRoute))
		}
		for j := range rule.All {
			if err := rule.All[j].Validate(); err != nil {
				return types.WrapError(types.RULES_PARSE_FAILED,
					fmt.Sprintf("rule %d condition %d invalid", i+1, j+1), err)
			}
		}
	}

	return nil
}

// Evaluate returns the route chosen for ctx: the first matching rule's route,
// or the default when no rule matches.
func (rs *RuleSet) Evaluate(ctx map[string]any) (int, error) {
	for i := range rs.Rules {
		ok, err := rs.Rules[i].Matches(ctx)
		if err != nil {
			return 0, err
		}
		if ok {
			return rs.Rules[i].Route, nil
		}
	}
	return rs.Default, nil
}

// ParseRuleSet parses a YAML rule set and validates it against the allowed
// route range.
func ParseRuleSet(source string, maxRoute int) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal([]byte(source), &rs); err != nil {
		return nil, types.WrapError(types.RULES_PARSE_FAILED, "failed to parse rule set", err)
	}

	if rs.Default == 0 {
		rs.Default = 1
	}

	if err := rs.Validate(maxRoute); err != nil {
		return nil, err
	}

	return &rs, nil
}
