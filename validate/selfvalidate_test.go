package validate

import (
	"strings"
	"testing"

	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/doml"
)

func newGraph(t *testing.T, langs ...*doml.DomainLanguage) *composition.Graph {
	t.Helper()
	g := composition.NewGraph()
	for _, lang := range langs {
		if err := g.AddLanguage(lang); err != nil {
			t.Fatalf("AddLanguage(%s): %v", lang.Name(), err)
		}
	}
	return g
}

func TestSelfValidateCleanDefinition(t *testing.T) {
	lang := doml.NewLanguage("pharma")
	drug := lang.AddEntity("Drug")
	lang.AddAttribute(drug, "name", doml.WithType(doml.TypeString))
	lang.Must(doml.Attribute{Entity: drug, Name: "name"})

	result := SelfValidate(newGraph(t, lang))

	if !result.IsValid() {
		t.Errorf("expected valid definition, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got: %v", result.Warnings)
	}
}

func TestSelfValidateConflictIsError(t *testing.T) {
	lang := doml.NewLanguage("pharma")
	drug := lang.AddEntity("Drug")
	lang.Must(drug)
	lang.MustNot(drug)

	result := SelfValidate(newGraph(t, lang))

	if result.IsValid() {
		t.Fatal("expected conflict to invalidate the definition")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "conflict") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "[pharma]") {
		t.Errorf("error should name the language: %s", result.Errors[0])
	}
}

func TestSelfValidateWarningsAreNotFatal(t *testing.T) {
	lang := doml.NewLanguage("pharma")
	drug := lang.AddEntity("Drug")
	cond := func(w *doml.World) (doml.ConditionOutcome, error) { return doml.NoIssue(), nil }
	lang.Must(drug, doml.WithCondition(cond))
	lang.MustNot(drug, doml.WithCondition(cond))

	result := SelfValidate(newGraph(t, lang))

	// Both conditional: ambiguity (warning) plus no_default (warning).
	if !result.IsValid() {
		t.Errorf("warnings must not invalidate, got errors: %v", result.Errors)
	}
	var ambiguity, noDefault bool
	for _, w := range result.Warnings {
		if strings.Contains(w, "ambiguity") {
			ambiguity = true
		}
		if strings.Contains(w, "no default") {
			noDefault = true
		}
	}
	if !ambiguity || !noDefault {
		t.Errorf("expected ambiguity and no_default warnings, got: %v", result.Warnings)
	}
}

func TestSelfValidateClosureError(t *testing.T) {
	lang := doml.NewLanguage("pharma")
	lang.AddEntity("Drug")
	lang.Must(doml.EntityType{Name: "Phantom"})

	result := SelfValidate(newGraph(t, lang))

	if result.IsValid() {
		t.Fatal("expected closure violation to invalidate the definition")
	}
	if !strings.Contains(result.Errors[0], "unknown element") {
		t.Errorf("unexpected error: %s", result.Errors[0])
	}
}

func TestSelfValidateOrphanDetection(t *testing.T) {
	a := doml.NewLanguage("a")
	b := doml.NewLanguage("b")
	c := doml.NewLanguage("c")
	g := newGraph(t, a, b, c)
	if err := g.AddEdge("a", "b"); err != nil {
		t.Fatal(err)
	}

	result := SelfValidate(g)

	var orphans []string
	for _, w := range result.Warnings {
		if strings.Contains(w, "orphaned language") {
			orphans = append(orphans, w)
		}
	}
	if len(orphans) != 1 || !strings.Contains(orphans[0], `"c"`) {
		t.Errorf("expected one orphan warning for c, got: %v", orphans)
	}
}

func TestSelfValidateSingleLanguageNotOrphan(t *testing.T) {
	lang := doml.NewLanguage("solo")
	result := SelfValidate(newGraph(t, lang))
	for _, w := range result.Warnings {
		if strings.Contains(w, "orphaned") {
			t.Errorf("a lone language is not an orphan: %s", w)
		}
	}
}
