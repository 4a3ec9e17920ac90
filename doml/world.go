package doml

import (
	"github.com/google/uuid"
)

// Element is an asserted entity instance in a world. Attrs maps attribute
// name to value; a missing key means the attribute was never asserted,
// which validation treats differently from an explicit Unknown.
type Element struct {
	Type       EntityType
	ID         string
	Attrs      map[string]Value
	Provenance string
}

// Attr returns the asserted value for an attribute name. The second
// result distinguishes "absent" from any asserted value, including
// Unknown.
func (e *Element) Attr(name string) (Value, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Link is an asserted instance edge: a relation between two elements
// identified by their identity strings.
type Link struct {
	Relation   Relation
	SourceID   string
	TargetID   string
	Provenance string
}

// World is a candidate semantic world: an ordered collection of asserted
// elements and links. Order is irrelevant for validation but preserved for
// reproducible diagnostics. Worlds are append-only while being built and
// must not be mutated once validation begins; the core never mutates them.
type World struct {
	elements []*Element
	links    []*Link
	byID     map[string]*Element
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{byID: make(map[string]*Element)}
}

// AddElement asserts an entity instance. An empty id is replaced with a
// generated UUID. Attrs may be nil.
func (w *World) AddElement(t EntityType, id string, attrs map[string]Value, provenance string) *Element {
	if id == "" {
		id = uuid.New().String()
	}
	if attrs == nil {
		attrs = make(map[string]Value)
	}
	e := &Element{Type: t, ID: id, Attrs: attrs, Provenance: provenance}
	w.elements = append(w.elements, e)
	w.byID[id] = e
	return e
}

// AddLink asserts a relation instance between two element identities.
func (w *World) AddLink(r Relation, sourceID, targetID, provenance string) *Link {
	l := &Link{Relation: r, SourceID: sourceID, TargetID: targetID, Provenance: provenance}
	w.links = append(w.links, l)
	return l
}

// Elements returns the asserted elements in assertion order.
func (w *World) Elements() []*Element { return w.elements }

// Links returns the asserted links in assertion order.
func (w *World) Links() []*Link { return w.links }

// ElementsByType returns the elements of one entity type, in order.
func (w *World) ElementsByType(t EntityType) []*Element {
	var out []*Element
	for _, e := range w.elements {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Element looks up an element by identity.
func (w *World) Element(id string) (*Element, bool) {
	e, ok := w.byID[id]
	return e, ok
}
