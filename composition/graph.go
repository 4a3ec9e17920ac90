// Package composition provides the directed import graph over domain
// languages: vocabulary union, cycle detection, deterministic topological
// ordering, and cross-reference checking.
package composition

import (
	"fmt"
	"sort"

	"github.com/c360studio/domainlang/doml"
)

// Edge is a directed import edge between two languages, by name.
type Edge struct {
	Source string
	Target string
}

// Graph is the composition graph: domain languages as nodes, import
// declarations as directed edges. Node and edge existence are enforced at
// insertion time (those are programmer errors); acyclicity is a checked
// property, reported by DetectImportCycles rather than prevented, so that
// self-validation can surface cycles as findings.
//
// A populated graph must be treated as shared-immutable: replace it
// wholesale rather than mutating it while validations read it.
type Graph struct {
	languages map[string]*doml.DomainLanguage
	order     []string
	edges     []Edge
}

// NewGraph creates an empty composition graph.
func NewGraph() *Graph {
	return &Graph{languages: make(map[string]*doml.DomainLanguage)}
}

// AddLanguage registers a language node. Registering a second language
// with the same name is an error.
func (g *Graph) AddLanguage(lang *doml.DomainLanguage) error {
	if _, exists := g.languages[lang.Name()]; exists {
		return fmt.Errorf("domain language %q already exists in graph", lang.Name())
	}
	g.languages[lang.Name()] = lang
	g.order = append(g.order, lang.Name())
	return nil
}

// AddEdge records that source imports target. Both endpoints must already
// be registered nodes.
func (g *Graph) AddEdge(source, target string) error {
	if _, ok := g.languages[source]; !ok {
		return fmt.Errorf("edge source %q not in graph", source)
	}
	if _, ok := g.languages[target]; !ok {
		return fmt.Errorf("edge target %q not in graph", target)
	}
	g.edges = append(g.edges, Edge{Source: source, Target: target})
	return nil
}

// Languages returns the registered languages in registration order.
func (g *Graph) Languages() []*doml.DomainLanguage {
	out := make([]*doml.DomainLanguage, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.languages[name])
	}
	return out
}

// Language looks up a language by name.
func (g *Graph) Language(name string) (*doml.DomainLanguage, bool) {
	l, ok := g.languages[name]
	return l, ok
}

// ByName returns the node map, for closure resolution.
func (g *Graph) ByName() map[string]*doml.DomainLanguage {
	out := make(map[string]*doml.DomainLanguage, len(g.languages))
	for k, v := range g.languages {
		out[k] = v
	}
	return out
}

// Edges returns the import edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Entity resolves an entity-type name across all languages, in
// registration order. Implements doml.Resolver.
func (g *Graph) Entity(name string) (doml.EntityType, bool) {
	for _, lang := range g.Languages() {
		if e, ok := lang.Entity(name); ok {
			return e, true
		}
	}
	return doml.EntityType{}, false
}

// Relation resolves a relation name across all languages, in registration
// order. Implements doml.Resolver.
func (g *Graph) Relation(name string) (doml.Relation, bool) {
	for _, lang := range g.Languages() {
		if r, ok := lang.Relation(name); ok {
			return r, true
		}
	}
	return doml.Relation{}, false
}

// ComposedVocab returns the union vocabulary of every node, keyed by
// symbol key. Edges do not restrict visibility; they only declare
// cross-references.
func (g *Graph) ComposedVocab() map[string]doml.Symbol {
	vocab := make(map[string]doml.Symbol)
	for _, lang := range g.Languages() {
		for k, s := range lang.Vocab() {
			vocab[k] = s
		}
	}
	return vocab
}

// ComposedRelations returns every declared relation across all nodes,
// deduplicated by key, in registration-then-declaration order.
func (g *Graph) ComposedRelations() []doml.Relation {
	seen := make(map[string]bool)
	var out []doml.Relation
	for _, lang := range g.Languages() {
		for _, r := range lang.Relations() {
			if seen[r.Key()] {
				continue
			}
			seen[r.Key()] = true
			out = append(out, r)
		}
	}
	return out
}

// adjacency builds the out-neighbor list from the edges.
func (g *Graph) adjacency() map[string][]string {
	adj := make(map[string][]string)
	for _, e := range g.edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// DetectImportCycles finds all cycles in the import graph using a
// three-color depth-first traversal. When a gray (in-progress) neighbor
// is met, the suffix of the current path from that neighbor, plus the
// closing node, is recorded as one cycle. Traversal restarts from every
// unvisited node so disjoint cycles are all found.
func (g *Graph) DetectImportCycles() [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	adj := g.adjacency()
	color := make(map[string]int, len(g.order))
	var cycles [][]string
	var path []string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		path = append(path, node)
		for _, neighbor := range adj[node] {
			switch color[neighbor] {
			case gray:
				start := 0
				for i, n := range path {
					if n == neighbor {
						start = i
						break
					}
				}
				cycle := append(append([]string{}, path[start:]...), neighbor)
				cycles = append(cycles, cycle)
			case white:
				dfs(neighbor)
			}
		}
		path = path[:len(path)-1]
		color[node] = black
	}

	for _, node := range g.order {
		if color[node] == white {
			dfs(node)
		}
	}
	return cycles
}

// TopologicalOrder returns a topological ordering of the languages, with
// sources preceding their import targets. The frontier is sorted by name
// at every step, so the order is identical across runs; this determinism
// exists for reproducible diagnostics, not for correctness of the order.
// ok is false whenever the graph has a cycle.
func (g *Graph) TopologicalOrder() (order []string, ok bool) {
	if len(g.DetectImportCycles()) > 0 {
		return nil, false
	}

	adj := g.adjacency()
	inDegree := make(map[string]int, len(g.order))
	for _, name := range g.order {
		inDegree[name] = 0
	}
	for _, e := range g.edges {
		inDegree[e.Target]++
	}

	var frontier []string
	for _, name := range g.order {
		if inDegree[name] == 0 {
			frontier = append(frontier, name)
		}
	}

	for len(frontier) > 0 {
		sort.Strings(frontier)
		node := frontier[0]
		frontier = frontier[1:]
		order = append(order, node)
		for _, neighbor := range adj[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				frontier = append(frontier, neighbor)
			}
		}
	}

	if len(order) != len(g.order) {
		return nil, false
	}
	return order, true
}

// CheckCrossReferences verifies that every import declaration resolves
// through a declared edge: for each import of B declared by A, an edge
// A->B must exist. A declared import with no node and a declared import
// with a node but no edge produce distinct errors.
func (g *Graph) CheckCrossReferences() []string {
	reachable := make(map[string]map[string]bool, len(g.order))
	for _, name := range g.order {
		reachable[name] = make(map[string]bool)
	}
	for _, e := range g.edges {
		reachable[e.Source][e.Target] = true
	}

	var errs []string
	for _, lang := range g.Languages() {
		for _, imp := range lang.Imports() {
			if _, ok := g.languages[imp.Target]; !ok {
				errs = append(errs, fmt.Sprintf("%q imports %q which is not in the graph",
					lang.Name(), imp.Target))
			} else if !reachable[lang.Name()][imp.Target] {
				errs = append(errs, fmt.Sprintf("%q imports %q but no edge exists in the graph",
					lang.Name(), imp.Target))
			}
		}
	}
	return errs
}

// StructuralValidation runs cycle detection and cross-reference checking,
// returning all structural errors.
func (g *Graph) StructuralValidation() []string {
	var errs []string
	for _, cycle := range g.DetectImportCycles() {
		msg := "import cycle detected: "
		for i, n := range cycle {
			if i > 0 {
				msg += " -> "
			}
			msg += n
		}
		errs = append(errs, msg)
	}
	errs = append(errs, g.CheckCrossReferences()...)
	return errs
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%d languages, %d edges)", len(g.languages), len(g.edges))
}
