//go:build property
// +build property

// Property-based tests for the rule interaction decision procedure.
package doml_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/c360studio/domainlang/doml"
)

func genOperator() gopter.Gen {
	return gen.OneConstOf(
		doml.OpMust, doml.OpMustNot, doml.OpShould, doml.OpShouldNot, doml.OpMay,
	)
}

func buildRule(op doml.Operator, conditional bool) *doml.NormativeRule {
	target := doml.NormativeTarget{Element: doml.EntityType{Name: "Subject"}}
	if conditional {
		target.Condition = func(w *doml.World) (doml.ConditionOutcome, error) {
			return doml.NoIssue(), nil
		}
	}
	return &doml.NormativeRule{Operator: op, Target: target}
}

// TestInteractionArgumentOrderInvariance verifies the decision procedure
// classifies a pair the same way regardless of argument order.
func TestInteractionArgumentOrderInvariance(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("kind and severity are order-invariant", prop.ForAll(
		func(opA, opB doml.Operator, condA, condB bool) bool {
			a := buildRule(opA, condA)
			b := buildRule(opB, condB)

			ab := doml.CheckInteraction(a, b)
			ba := doml.CheckInteraction(b, a)

			if ab == nil || ba == nil {
				return ab == ba
			}
			return ab.Kind == ba.Kind && ab.Severity == ba.Severity
		},
		genOperator(),
		genOperator(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("every same-target pair yields a diagnostic", prop.ForAll(
		func(opA, opB doml.Operator, condA, condB bool) bool {
			a := buildRule(opA, condA)
			b := buildRule(opB, condB)
			return doml.CheckInteraction(a, b) != nil
		},
		genOperator(),
		genOperator(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestCompatibilityPartition verifies every operator pair is classified
// as exactly one of compatible or conflicting, never both or neither.
func TestCompatibilityPartition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("compatible pairs always overlap", prop.ForAll(
		func(opA, opB doml.Operator, condA, condB bool) bool {
			a := buildRule(opA, condA)
			b := buildRule(opB, condB)
			d := doml.CheckInteraction(a, b)
			if doml.CompatibleOperators(opA, opB) {
				return d != nil && d.Kind == doml.FindingOverlap
			}
			return d != nil && d.Kind != doml.FindingOverlap
		},
		genOperator(),
		genOperator(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
