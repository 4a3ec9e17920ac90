package composition

import (
	"reflect"
	"strings"
	"testing"

	"github.com/c360studio/domainlang/doml"
)

func mkGraph(t *testing.T, names []string, edges [][2]string) *Graph {
	t.Helper()
	g := NewGraph()
	for _, name := range names {
		if err := g.AddLanguage(doml.NewLanguage(name)); err != nil {
			t.Fatalf("AddLanguage(%s): %v", name, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddLanguageDuplicate(t *testing.T) {
	g := NewGraph()
	if err := g.AddLanguage(doml.NewLanguage("pharma")); err != nil {
		t.Fatalf("first AddLanguage: %v", err)
	}
	err := g.AddLanguage(doml.NewLanguage("pharma"))
	if err == nil {
		t.Fatal("expected error for duplicate language")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAddEdgeUnknownEndpoints(t *testing.T) {
	g := mkGraph(t, []string{"a"}, nil)

	if err := g.AddEdge("missing", "a"); err == nil || !strings.Contains(err.Error(), "source") {
		t.Errorf("expected source error, got %v", err)
	}
	if err := g.AddEdge("a", "missing"); err == nil || !strings.Contains(err.Error(), "target") {
		t.Errorf("expected target error, got %v", err)
	}
}

func TestDetectImportCycles(t *testing.T) {
	tests := []struct {
		name   string
		names  []string
		edges  [][2]string
		cycles int
	}{
		{
			name:   "acyclic chain",
			names:  []string{"a", "b", "c"},
			edges:  [][2]string{{"a", "b"}, {"b", "c"}},
			cycles: 0,
		},
		{
			name:   "two cycle",
			names:  []string{"a", "b"},
			edges:  [][2]string{{"a", "b"}, {"b", "a"}},
			cycles: 1,
		},
		{
			name:   "three cycle",
			names:  []string{"a", "b", "c"},
			edges:  [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			cycles: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mkGraph(t, tt.names, tt.edges)
			cycles := g.DetectImportCycles()
			if len(cycles) != tt.cycles {
				t.Fatalf("cycles = %d, want %d (%v)", len(cycles), tt.cycles, cycles)
			}
			for _, cycle := range cycles {
				if cycle[0] != cycle[len(cycle)-1] {
					t.Errorf("cycle %v must close on its first node", cycle)
				}
			}
		})
	}
}

func TestTwoCycleNamesBothLanguages(t *testing.T) {
	g := mkGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	cycles := g.DetectImportCycles()
	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	joined := strings.Join(cycles[0], " ")
	if !strings.Contains(joined, "a") || !strings.Contains(joined, "b") {
		t.Errorf("cycle %v should name both languages", cycles[0])
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := mkGraph(t, []string{"c", "a", "b"}, [][2]string{{"a", "b"}, {"b", "c"}})

	order, ok := g.TopologicalOrder()
	if !ok {
		t.Fatal("expected an ordering for an acyclic graph")
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestTopologicalOrderCycle(t *testing.T) {
	g := mkGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
	if order, ok := g.TopologicalOrder(); ok {
		t.Errorf("expected no ordering for a cyclic graph, got %v", order)
	}
}

func TestTopologicalOrderDeterministic(t *testing.T) {
	g := mkGraph(t, []string{"z", "m", "a"}, nil)

	first, _ := g.TopologicalOrder()
	second, _ := g.TopologicalOrder()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("orderings differ between runs: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(first, []string{"a", "m", "z"}) {
		t.Errorf("independent languages must sort by name, got %v", first)
	}
}

func TestCheckCrossReferences(t *testing.T) {
	g := NewGraph()
	pharma := doml.NewLanguage("pharma")
	pharma.AddImport("clinical")
	pharma.AddImport("phantom")
	clinical := doml.NewLanguage("clinical")
	if err := g.AddLanguage(pharma); err != nil {
		t.Fatal(err)
	}
	if err := g.AddLanguage(clinical); err != nil {
		t.Fatal(err)
	}
	// Import of clinical declared but no edge; phantom not in graph at all.

	errs := g.CheckCrossReferences()
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2: %v", len(errs), errs)
	}

	var missingNode, missingEdge bool
	for _, e := range errs {
		if strings.Contains(e, "not in the graph") {
			missingNode = true
		}
		if strings.Contains(e, "no edge exists") {
			missingEdge = true
		}
	}
	if !missingNode || !missingEdge {
		t.Errorf("expected both error kinds, got %v", errs)
	}
}

func TestComposedVocabAndRelations(t *testing.T) {
	g := NewGraph()
	clinical := doml.NewLanguage("clinical")
	patient := clinical.AddEntity("Patient")
	pharma := doml.NewLanguage("pharma")
	drug := pharma.AddEntity("Drug")
	pharma.AddRelation("prescribedTo", drug, patient)
	clinical.AddRelation("prescribedTo", drug, patient)

	if err := g.AddLanguage(clinical); err != nil {
		t.Fatal(err)
	}
	if err := g.AddLanguage(pharma); err != nil {
		t.Fatal(err)
	}

	vocab := g.ComposedVocab()
	if _, ok := vocab["entity.Patient"]; !ok {
		t.Error("composed vocab missing entity.Patient")
	}
	if _, ok := vocab["entity.Drug"]; !ok {
		t.Error("composed vocab missing entity.Drug")
	}

	rels := g.ComposedRelations()
	if len(rels) != 1 {
		t.Errorf("composed relations = %d, want 1 (dedup by key)", len(rels))
	}

	if _, ok := g.Entity("Drug"); !ok {
		t.Error("Entity resolver missing Drug")
	}
	if _, ok := g.Relation("prescribedTo"); !ok {
		t.Error("Relation resolver missing prescribedTo")
	}
}

func TestStructuralValidation(t *testing.T) {
	g := NewGraph()
	a := doml.NewLanguage("a")
	a.AddImport("b")
	b := doml.NewLanguage("b")
	if err := g.AddLanguage(a); err != nil {
		t.Fatal(err)
	}
	if err := g.AddLanguage(b); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge("b", "a"); err != nil {
		t.Fatal(err)
	}

	errs := g.StructuralValidation()
	var sawCycle bool
	for _, e := range errs {
		if strings.Contains(e, "import cycle detected") {
			sawCycle = true
		}
	}
	if !sawCycle {
		t.Errorf("expected a cycle error, got %v", errs)
	}
}
