package validate

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/doml"
)

// Option adjusts validation behavior.
type Option func(*options)

type options struct {
	strictProvenance bool
}

// WithStrictProvenance promotes missing provenance from an advisory
// detail to a Traceability FAIL. The default preserves the published
// admissibility guarantee, where absent provenance is reported but never
// fatal; enabling this changes that guarantee and should be called out in
// the deployment's documentation.
func WithStrictProvenance() Option {
	return func(o *options) { o.strictProvenance = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CheckAdmissibility runs the four structural conditions against
// (graph, world). The conditions are independent and read-only over the
// same immutable inputs, so they run concurrently; each writes a fixed
// slot, keeping the result order deterministic.
func CheckAdmissibility(graph *composition.Graph, world *doml.World, opts ...Option) AdmissibilityResult {
	o := buildOptions(opts)
	conditions := make([]ConditionResult, 4)

	var g errgroup.Group
	g.Go(func() error { conditions[0] = checkVocabularyClosure(graph, world); return nil })
	g.Go(func() error { conditions[1] = checkRelationAdmissibility(graph, world); return nil })
	g.Go(func() error { conditions[2] = checkCompleteness(graph, world); return nil })
	g.Go(func() error { conditions[3] = checkTraceability(world, o.strictProvenance); return nil })
	_ = g.Wait()

	return AdmissibilityResult{Conditions: conditions}
}

// Condition 1: every asserted element's entity type is in the composed
// vocabulary, and every asserted link's relation kind is declared by some
// language.
func checkVocabularyClosure(graph *composition.Graph, world *doml.World) ConditionResult {
	vocab := graph.ComposedVocab()
	declaredRels := make(map[string]bool)
	for _, r := range graph.ComposedRelations() {
		declaredRels[r.Key()] = true
	}

	var details []string
	failed := false

	for _, elem := range world.Elements() {
		if _, ok := vocab[elem.Type.Key()]; !ok {
			details = append(details, fmt.Sprintf(
				"entity type %q (element %q) not in composed vocabulary",
				elem.Type.Name, elem.ID))
			failed = true
		}
	}
	for _, link := range world.Links() {
		if !declaredRels[link.Relation.Key()] {
			details = append(details, fmt.Sprintf(
				"relation %q not declared in any domain language", link.Relation.Name))
			failed = true
		}
	}

	status := StatusPass
	if failed {
		status = StatusFail
	}
	return ConditionResult{Ordinal: 1, Name: "Vocabulary Closure", Status: status, Details: details}
}

// Condition 2: every asserted link is declared, connects elements that
// exist, matches the declared endpoint types in the declared direction,
// and — when its endpoint types live in disjoint language sets — is
// backed by a composition edge between those languages in either
// direction.
func checkRelationAdmissibility(graph *composition.Graph, world *doml.World) ConditionResult {
	typeLangs := make(map[string]map[string]bool)
	relDeclared := make(map[string]bool)
	for _, lang := range graph.Languages() {
		for _, e := range lang.Entities() {
			if typeLangs[e.Key()] == nil {
				typeLangs[e.Key()] = make(map[string]bool)
			}
			typeLangs[e.Key()][lang.Name()] = true
		}
		for _, r := range lang.Relations() {
			relDeclared[r.Key()] = true
		}
	}

	var details []string
	failed := false

	for _, link := range world.Links() {
		rel := link.Relation

		if !relDeclared[rel.Key()] {
			details = append(details, fmt.Sprintf(
				"relation %q not declared in any domain language", rel.Name))
			failed = true
			continue
		}

		source, srcOK := world.Element(link.SourceID)
		target, tgtOK := world.Element(link.TargetID)
		if !srcOK || !tgtOK {
			details = append(details, fmt.Sprintf(
				"relation %q references unknown element(s): source=%s, target=%s",
				rel.Name, link.SourceID, link.TargetID))
			failed = true
			continue
		}

		if source.Type != rel.Source {
			details = append(details, fmt.Sprintf(
				"relation %q: source %q has type %q, expected %q",
				rel.Name, source.ID, source.Type.Name, rel.Source.Name))
			failed = true
		}
		if target.Type != rel.Target {
			details = append(details, fmt.Sprintf(
				"relation %q: target %q has type %q, expected %q",
				rel.Name, target.ID, target.Type.Name, rel.Target.Name))
			failed = true
		}

		srcLangs := typeLangs[source.Type.Key()]
		tgtLangs := typeLangs[target.Type.Key()]
		if len(srcLangs) > 0 && len(tgtLangs) > 0 && disjoint(srcLangs, tgtLangs) {
			if !edgeBetween(graph, srcLangs, tgtLangs) {
				details = append(details, fmt.Sprintf(
					"cross-language relation %q between %v and %v has no composition edge",
					rel.Name, keys(srcLangs), keys(tgtLangs)))
				failed = true
			}
		}
	}

	status := StatusPass
	if failed {
		status = StatusFail
	}
	return ConditionResult{Ordinal: 2, Name: "Relation Admissibility", Status: status, Details: details}
}

func disjoint(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return false
		}
	}
	return true
}

func edgeBetween(graph *composition.Graph, a, b map[string]bool) bool {
	for _, e := range graph.Edges() {
		if (a[e.Source] && b[e.Target]) || (b[e.Source] && a[e.Target]) {
			return true
		}
	}
	return false
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Condition 3: for every MUST rule on an attribute, every instance of the
// owning entity type carries a value for it. A missing key is a FAIL; an
// explicit UNKNOWN passes but marks the condition UNKNOWN_PRESENT —
// never silently satisfied, never treated as absent. For every MUST rule
// on a relation, every instance of the source type has at least one
// outgoing link of that kind.
func checkCompleteness(graph *composition.Graph, world *doml.World) ConditionResult {
	var details []string
	failed := false
	hasUnknowns := false

	for _, lang := range graph.Languages() {
		for _, rule := range lang.Rules() {
			if rule.Operator != doml.OpMust {
				continue
			}
			switch target := rule.Target.Element.(type) {
			case doml.Attribute:
				for _, elem := range world.ElementsByType(target.Entity) {
					val, present := elem.Attr(target.Name)
					if !present {
						details = append(details, fmt.Sprintf(
							"MUST(%s): element %q silently omits required attribute", target, elem.ID))
						failed = true
					} else if val.IsUnknown() {
						details = append(details, fmt.Sprintf(
							"MUST(%s): element %q has UNKNOWN value (explicit gap)", target, elem.ID))
						hasUnknowns = true
					}
				}
			case doml.Relation:
				for _, elem := range world.ElementsByType(target.Source) {
					if !hasOutgoing(world, target, elem.ID) {
						details = append(details, fmt.Sprintf(
							"MUST(%s): element %q missing required relation", target, elem.ID))
						failed = true
					}
				}
			}
		}
	}

	status := StatusPass
	switch {
	case failed:
		status = StatusFail
	case hasUnknowns:
		status = StatusUnknownPresent
	}
	return ConditionResult{Ordinal: 3, Name: "Completeness with Explicit Gaps", Status: status, Details: details}
}

func hasOutgoing(world *doml.World, rel doml.Relation, sourceID string) bool {
	for _, link := range world.Links() {
		if link.Relation.Key() == rel.Key() && link.SourceID == sourceID {
			return true
		}
	}
	return false
}

// Condition 4: every element and link should carry non-empty provenance.
// Absence is recorded as a detail; it causes FAIL only under the strict
// option.
func checkTraceability(world *doml.World, strict bool) ConditionResult {
	var details []string

	for _, elem := range world.Elements() {
		if elem.Provenance == "" {
			details = append(details, fmt.Sprintf(
				"element %q (%s) has no provenance, may be inferred", elem.ID, elem.Type.Name))
		}
	}
	for _, link := range world.Links() {
		if link.Provenance == "" {
			details = append(details, fmt.Sprintf(
				"relation %q (%s -> %s) has no provenance, may be inferred",
				link.Relation.Name, link.SourceID, link.TargetID))
		}
	}

	status := StatusPass
	if strict && len(details) > 0 {
		status = StatusFail
	}
	return ConditionResult{Ordinal: 4, Name: "Traceability", Status: status, Details: details}
}
