package celcond

import (
	"strings"
	"testing"

	"github.com/c360studio/domainlang/doml"
)

func testWorld() *doml.World {
	w := doml.NewWorld()
	w.AddElement(doml.EntityType{Name: "Patient"}, "p1", map[string]doml.Value{
		"age":              doml.IntValue(34),
		"pregnancy_status": doml.Unknown,
	}, "intake")
	w.AddElement(doml.EntityType{Name: "Drug"}, "d1", map[string]doml.Value{
		"name": doml.StringValue("warfarin"),
	}, "formulary")
	w.AddLink(doml.Relation{Name: "prescribedTo"}, "d1", "p1", "chart")
	return w
}

func mustCompiler(t *testing.T) *Compiler {
	t.Helper()
	c, err := NewCompiler()
	if err != nil {
		t.Fatalf("NewCompiler: %v", err)
	}
	return c
}

func TestConditionFires(t *testing.T) {
	c := mustCompiler(t)
	cond, err := c.Condition(
		`world.elements.exists(e, e.type == 'Patient' && e.attrs.pregnancy_status == 'UNKNOWN')`,
		"pregnancy status unknown")
	if err != nil {
		t.Fatalf("Condition: %v", err)
	}

	outcome, err := cond(testWorld())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if outcome.OK() {
		t.Fatal("expected the condition to fire")
	}
	if got := outcome.Messages(); len(got) != 1 || got[0] != "pregnancy status unknown" {
		t.Errorf("messages = %v, want the description", got)
	}
}

func TestConditionQuiet(t *testing.T) {
	c := mustCompiler(t)
	cond, err := c.Condition(
		`world.elements.exists(e, e.type == 'Reactor')`,
		"a reactor is asserted")
	if err != nil {
		t.Fatalf("Condition: %v", err)
	}

	outcome, err := cond(testWorld())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !outcome.OK() {
		t.Errorf("expected no issue, got %v", outcome.Messages())
	}
}

func TestPredicate(t *testing.T) {
	c := mustCompiler(t)
	pred, err := c.Predicate(`size(world.relations) <= 5`)
	if err != nil {
		t.Fatalf("Predicate: %v", err)
	}

	ok, err := pred(testWorld())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ok {
		t.Error("expected the predicate to hold")
	}
}

func TestCompileErrorSurfacesExpression(t *testing.T) {
	c := mustCompiler(t)
	_, err := c.Condition(`world.elements.exists(`, "broken")
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(err.Error(), "compile") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNonBoolResultIsError(t *testing.T) {
	c := mustCompiler(t)
	pred, err := c.Predicate(`size(world.elements)`)
	if err != nil {
		t.Fatalf("Predicate: %v", err)
	}
	if _, err := pred(testWorld()); err == nil {
		t.Error("expected an evaluation error for a non-bool result")
	}
}

func TestProgramCacheReuse(t *testing.T) {
	c := mustCompiler(t)
	const expr = `world.elements.exists(e, e.type == 'Drug')`

	first, err := c.Predicate(expr)
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	second, err := c.Predicate(expr)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}

	w := testWorld()
	a, _ := first(w)
	b, _ := second(w)
	if a != b || !a {
		t.Errorf("cached program disagrees: %v vs %v", a, b)
	}
}
