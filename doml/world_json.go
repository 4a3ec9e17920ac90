package doml

import (
	"encoding/json"
	"fmt"
)

// Resolver resolves entity-type and relation names against a domain
// definition. A composition graph satisfies this.
type Resolver interface {
	Entity(name string) (EntityType, bool)
	Relation(name string) (Relation, bool)
}

// ElementDoc is the wire form of an asserted element.
type ElementDoc struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Attrs      map[string]Value `json:"attrs,omitempty"`
	Provenance string           `json:"provenance,omitempty"`
}

// LinkDoc is the wire form of an asserted relation.
type LinkDoc struct {
	Relation   string `json:"relation"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	Provenance string `json:"provenance,omitempty"`
}

// WorldDoc is the wire form of a world.
type WorldDoc struct {
	Elements  []ElementDoc `json:"elements"`
	Relations []LinkDoc    `json:"relations,omitempty"`
}

// ParseWorld decodes a world document against a resolver. Names that do
// not resolve are kept as bare symbols rather than rejected: the closed
// world is enforced by the vocabulary-closure condition, not by the
// decoder, so an out-of-vocabulary world still round-trips into a world
// that validation can FAIL with a precise message.
func ParseWorld(data []byte, r Resolver) (*World, error) {
	var doc WorldDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode world document: %w", err)
	}
	return doc.Build(r), nil
}

// Build constructs a world from the document. See ParseWorld.
func (doc *WorldDoc) Build(r Resolver) *World {
	w := NewWorld()
	for _, el := range doc.Elements {
		t := EntityType{Name: el.Type}
		if r != nil {
			if resolved, ok := r.Entity(el.Type); ok {
				t = resolved
			}
		}
		w.AddElement(t, el.ID, el.Attrs, el.Provenance)
	}
	for _, ln := range doc.Relations {
		rel := Relation{Name: ln.Relation}
		if r != nil {
			if resolved, ok := r.Relation(ln.Relation); ok {
				rel = resolved
			}
		}
		w.AddLink(rel, ln.Source, ln.Target, ln.Provenance)
	}
	return w
}

// Doc converts the world back to its wire form.
func (w *World) Doc() WorldDoc {
	doc := WorldDoc{}
	for _, e := range w.elements {
		doc.Elements = append(doc.Elements, ElementDoc{
			Type:       e.Type.Name,
			ID:         e.ID,
			Attrs:      e.Attrs,
			Provenance: e.Provenance,
		})
	}
	for _, l := range w.links {
		doc.Relations = append(doc.Relations, LinkDoc{
			Relation:   l.Relation.Name,
			Source:     l.SourceID,
			Target:     l.TargetID,
			Provenance: l.Provenance,
		})
	}
	return doc
}

// Input returns the world as plain Go maps and slices, the shape handed
// to expression-language conditions. Unknown values appear as the
// UnknownToken string.
func (w *World) Input() map[string]any {
	elements := make([]any, 0, len(w.elements))
	for _, e := range w.elements {
		attrs := make(map[string]any, len(e.Attrs))
		for name, v := range e.Attrs {
			attrs[name] = v.Native()
		}
		elements = append(elements, map[string]any{
			"type":       e.Type.Name,
			"id":         e.ID,
			"attrs":      attrs,
			"provenance": e.Provenance,
		})
	}
	relations := make([]any, 0, len(w.links))
	for _, l := range w.links {
		relations = append(relations, map[string]any{
			"relation":   l.Relation.Name,
			"source":     l.SourceID,
			"target":     l.TargetID,
			"provenance": l.Provenance,
		})
	}
	return map[string]any{
		"elements":  elements,
		"relations": relations,
	}
}
