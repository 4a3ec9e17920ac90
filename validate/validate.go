package validate

import (
	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/doml"
)

// Validate runs the combined five-condition predicate against
// (graph, world): the four admissibility conditions followed by
// Consistency, which evaluates the normative rules and constraints.
// Admissibility gates evaluation: when any of conditions 1-4 is FAIL the
// rule engine is not run and Consistency is reported FAIL with a detail
// saying so, keeping findings attributable to a well-formed world.
func Validate(graph *composition.Graph, world *doml.World, opts ...Option) ValidationResult {
	adm := CheckAdmissibility(graph, world, opts...)

	conditions := make([]ConditionResult, 0, 5)
	conditions = append(conditions, adm.Conditions...)
	conditions = append(conditions, consistencyCondition(graph, world, adm))

	return ValidationResult{Conditions: conditions}
}

func consistencyCondition(graph *composition.Graph, world *doml.World, adm AdmissibilityResult) ConditionResult {
	if !adm.IsAdmissible() {
		return ConditionResult{
			Ordinal: 5,
			Name:    "Consistency",
			Status:  StatusFail,
			Details: []string{"not evaluated: world is not admissible"},
		}
	}

	eval := EvaluateRules(graph, world)

	var details []string
	details = append(details, eval.Violations...)
	details = append(details, eval.ConstraintFailures...)
	details = append(details, eval.Advisories...)

	status := StatusPass
	if !eval.IsValid() {
		status = StatusFail
	}
	return ConditionResult{Ordinal: 5, Name: "Consistency", Status: status, Details: details}
}
