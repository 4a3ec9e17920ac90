package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/c360studio/domainlang/doml"
)

func TestValidateFiveConditions(t *testing.T) {
	g, drug, _, _ := pharmaGraph(t)

	w := doml.NewWorld()
	w.AddElement(drug, "d1", map[string]doml.Value{"name": doml.StringValue("warfarin")}, "formulary")

	result := Validate(g, w)

	if len(result.Conditions) != 5 {
		t.Fatalf("conditions = %d, want 5", len(result.Conditions))
	}
	wantNames := []string{
		"Vocabulary Closure",
		"Relation Admissibility",
		"Completeness with Explicit Gaps",
		"Traceability",
		"Consistency",
	}
	for i, want := range wantNames {
		if result.Conditions[i].Name != want {
			t.Errorf("condition %d = %q, want %q", i+1, result.Conditions[i].Name, want)
		}
		if result.Conditions[i].Ordinal != i+1 {
			t.Errorf("condition %q ordinal = %d, want %d", want, result.Conditions[i].Ordinal, i+1)
		}
	}
	if !result.IsValid() {
		t.Errorf("expected valid world:\n%s", result.Summary())
	}
}

func TestInadmissibleWorldSkipsRuleEvaluation(t *testing.T) {
	g, _, _, _ := pharmaGraph(t)
	pharma, _ := g.Language("pharma")

	evaluated := false
	op := pharma.AddOperation("prescribe")
	pharma.MustNot(op, doml.WithCondition(func(w *doml.World) (doml.ConditionOutcome, error) {
		evaluated = true
		return doml.Issues("fired"), nil
	}))

	w := doml.NewWorld()
	w.AddElement(doml.EntityType{Name: "Supplement"}, "s1", nil, "")

	result := Validate(g, w)

	if evaluated {
		t.Error("rules must not run against an inadmissible world")
	}
	consistency := result.Conditions[4]
	if consistency.Status != StatusFail {
		t.Errorf("Consistency status = %s, want FAIL", consistency.Status)
	}
	if len(consistency.Details) != 1 || !strings.Contains(consistency.Details[0], "not evaluated") {
		t.Errorf("Consistency must say it was skipped: %v", consistency.Details)
	}
}

func TestRuleViolationFailsConsistency(t *testing.T) {
	g, drug, _, _ := pharmaGraph(t)
	pharma, _ := g.Language("pharma")
	pharma.MustNot(drug, doml.WithCondition(func(w *doml.World) (doml.ConditionOutcome, error) {
		return doml.Issues("contraindicated"), nil
	}))

	w := doml.NewWorld()
	w.AddElement(drug, "d1", map[string]doml.Value{"name": doml.StringValue("x")}, "")

	result := Validate(g, w)

	if result.IsValid() {
		t.Fatal("expected invalid world")
	}
	consistency := result.Conditions[4]
	if consistency.Status != StatusFail {
		t.Errorf("Consistency status = %s, want FAIL", consistency.Status)
	}
	if !strings.Contains(strings.Join(consistency.Details, " "), "contraindicated") {
		t.Errorf("details should carry the violation: %v", consistency.Details)
	}
}

func TestUnknownsSurviveToCombinedResult(t *testing.T) {
	g, _, patient, _ := pharmaGraph(t)
	clinical, _ := g.Language("clinical")
	clinical.Must(doml.Attribute{Entity: patient, Name: "pregnancy_status"})

	w := doml.NewWorld()
	w.AddElement(patient, "p1", map[string]doml.Value{"pregnancy_status": doml.Unknown}, "intake")

	result := Validate(g, w)

	if !result.IsValid() {
		t.Errorf("explicit gap must stay valid:\n%s", result.Summary())
	}
	if !result.HasUnknowns() {
		t.Error("combined result must surface the UNKNOWN")
	}
}

func TestValidateDeterministic(t *testing.T) {
	g, drug, patient, rel := pharmaGraph(t)

	w := doml.NewWorld()
	w.AddElement(drug, "d1", map[string]doml.Value{"name": doml.StringValue("x")}, "a")
	w.AddElement(patient, "p1", nil, "b")
	w.AddLink(rel, "d1", "p1", "c")

	first := Validate(g, w)
	second := Validate(g, w)
	if !reflect.DeepEqual(first, second) {
		t.Error("validation must be deterministic for identical inputs")
	}
}
