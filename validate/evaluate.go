package validate

import (
	"fmt"

	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/doml"
)

// EvaluateRules evaluates the executable normative rules and every
// constraint of every language in the graph against the world. MUST_NOT
// breaches are violations (fatal); SHOULD and SHOULD_NOT breaches are
// advisories. MUST obligations are checked by the completeness
// condition, not here, and MAY grants permission, so neither operator
// executes. A panicking or erroring condition never aborts the run; it
// is contained and reported at the severity of the rule that raised it.
func EvaluateRules(graph *composition.Graph, world *doml.World) RuleEvaluationResult {
	var result RuleEvaluationResult

	for _, lang := range graph.Languages() {
		for _, rule := range lang.Rules() {
			evaluateRule(lang.Name(), rule, world, &result)
		}
		for _, c := range lang.Constraints() {
			evaluateConstraint(lang.Name(), c, world, &result)
		}
	}

	return result
}

func evaluateRule(lang string, rule *doml.NormativeRule, world *doml.World, result *RuleEvaluationResult) {
	fatal := rule.Operator == doml.OpMustNot

	report := func(msg string) {
		if fatal {
			result.Violations = append(result.Violations, msg)
		} else {
			result.Advisories = append(result.Advisories, msg)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			report(fmt.Sprintf("[%s] rule %s(%s) panicked during evaluation: %v",
				lang, rule.Operator, rule.Target.Element, r))
		}
	}()

	switch rule.Operator {
	case doml.OpMustNot:
		if !rule.Target.Conditional() {
			// The only unconditional rule with runtime effect: a bare
			// MUST_NOT on an entity type forbids instances of it.
			if entity, ok := rule.Target.Element.(doml.EntityType); ok {
				if n := len(world.ElementsByType(entity)); n > 0 {
					result.Violations = append(result.Violations, fmt.Sprintf(
						"[%s] MUST_NOT violation: %d instance(s) of forbidden entity type %q",
						lang, n, entity.Name))
				}
			}
			return
		}
	case doml.OpShould, doml.OpShouldNot:
		if !rule.Target.Conditional() {
			return
		}
	default:
		// MUST obligations belong to the completeness condition and
		// MAY grants permission. In the exception pattern a firing
		// MUST condition means the exception applies, not that
		// anything is wrong.
		return
	}

	outcome, err := rule.Target.Condition(world)
	if err != nil {
		report(fmt.Sprintf("[%s] rule %s(%s) failed to evaluate: %v",
			lang, rule.Operator, rule.Target.Element, err))
		return
	}
	if outcome.OK() {
		return
	}

	desc := rule.Target.Description
	if desc == "" {
		desc = fmt.Sprintf("%s(%s)", rule.Operator, rule.Target.Element)
	}

	if rule.Operator == doml.OpMustNot {
		msg := fmt.Sprintf("[%s] MUST_NOT violation: %s", lang, desc)
		for _, m := range outcome.Messages() {
			msg += fmt.Sprintf(" -> %s", m)
		}
		result.Violations = append(result.Violations, msg)
		return
	}

	msg := fmt.Sprintf("[%s] %s advisory: %s", lang, rule.Operator, desc)
	for _, m := range outcome.Messages() {
		msg += fmt.Sprintf(" -> %s", m)
	}
	result.Advisories = append(result.Advisories, msg)
}

func evaluateConstraint(lang string, c doml.Constraint, world *doml.World, result *RuleEvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			result.ConstraintFailures = append(result.ConstraintFailures, fmt.Sprintf(
				"[%s] constraint %s panicked during evaluation: %v", lang, c.Name, r))
		}
	}()

	ok, err := c.Predicate(world)
	if err != nil {
		result.ConstraintFailures = append(result.ConstraintFailures, fmt.Sprintf(
			"[%s] constraint %s failed to evaluate: %v", lang, c.Name, err))
		return
	}
	if !ok {
		result.ConstraintFailures = append(result.ConstraintFailures, fmt.Sprintf(
			"[%s] %s: %s", lang, c.Name, c.Description))
	}
}
