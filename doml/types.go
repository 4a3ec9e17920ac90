package doml

import "fmt"

// Optionality constrains how an attribute's presence is interpreted.
type Optionality string

const (
	// Required attributes are expected to carry a value.
	Required Optionality = "required"

	// Optional attributes may be absent without comment.
	Optional Optionality = "optional"

	// UnknownAdmissible attributes may carry the explicit UNKNOWN value.
	UnknownAdmissible Optionality = "unknown_admissible"
)

// Symbol is a named element of a domain vocabulary: an entity type, an
// attribute, an operation, or a declared relation. Symbols are interned
// by their Key — two symbols are the same element iff their keys match,
// so equality never depends on where a value was constructed.
type Symbol interface {
	// Key returns the dotted identity of the symbol, unique across kinds.
	Key() string
	fmt.Stringer
}

// EntityType is a named entity type admitted by a domain language.
type EntityType struct {
	Name string
}

// Key returns the interned identity of the entity type.
func (e EntityType) Key() string { return "entity." + e.Name }

func (e EntityType) String() string { return "Entity(" + e.Name + ")" }

// Attribute is a typed property of exactly one entity type. Identity is
// the (entity, name) pair; the type tag and optionality do not
// participate in identity.
type Attribute struct {
	Entity      EntityType
	Name        string
	Type        ValueType
	Optionality Optionality
}

// Key returns the interned identity of the attribute.
func (a Attribute) Key() string { return "attr." + a.Entity.Name + "." + a.Name }

func (a Attribute) String() string {
	if a.Optionality != "" && a.Optionality != Required {
		return fmt.Sprintf("Attr(%s.%s, %s)", a.Entity.Name, a.Name, a.Optionality)
	}
	return fmt.Sprintf("Attr(%s.%s)", a.Entity.Name, a.Name)
}

// OperationType is an admissible transition or event label. It carries no
// structure beyond its name.
type OperationType struct {
	Name string
}

// Key returns the interned identity of the operation.
func (o OperationType) Key() string { return "op." + o.Name }

func (o OperationType) String() string { return "Op(" + o.Name + ")" }

// Relation declares an admissible directed edge type between instances of
// two entity types.
type Relation struct {
	Name   string
	Source EntityType
	Target EntityType
}

// Key returns the interned identity of the relation.
func (r Relation) Key() string { return "rel." + r.Name }

func (r Relation) String() string {
	return fmt.Sprintf("Rel(%s --%s--> %s)", r.Source.Name, r.Name, r.Target.Name)
}

// ConditionOutcome is the tagged result of evaluating a condition against
// a world: either no issue, or a list of issue messages. Conditions never
// signal "no issue" through errors.
type ConditionOutcome struct {
	issues []string
}

// NoIssue is the outcome of a condition that found nothing.
func NoIssue() ConditionOutcome { return ConditionOutcome{} }

// Issues is the outcome of a condition that found one or more issues.
func Issues(msgs ...string) ConditionOutcome { return ConditionOutcome{issues: msgs} }

// OK reports whether the condition found no issues.
func (o ConditionOutcome) OK() bool { return len(o.issues) == 0 }

// Messages returns the issue messages, nil when OK.
func (o ConditionOutcome) Messages() []string { return o.issues }

// Condition is a predicate over a world attached to a normative target.
// A returned error means the condition itself could not be evaluated; the
// evaluator converts it to a detail string and keeps going.
type Condition func(w *World) (ConditionOutcome, error)

// NormativeTarget pairs a vocabulary symbol with an optional condition
// and a human-readable description. Target identity is the symbol alone:
// conditions are never compared, so a target's identity is independent of
// its predicate logic.
type NormativeTarget struct {
	Element     Symbol
	Condition   Condition
	Description string
}

// Conditional reports whether the target carries a condition.
func (t NormativeTarget) Conditional() bool { return t.Condition != nil }

func (t NormativeTarget) String() string {
	if t.Description != "" {
		return fmt.Sprintf("Target(%s WHERE %s)", t.Element, t.Description)
	}
	return fmt.Sprintf("Target(%s)", t.Element)
}

// Predicate is an invariant over a world. True means satisfied.
type Predicate func(w *World) (bool, error)

// Constraint is a named invariant predicate. References list the
// vocabulary symbols the constraint is documented to touch; they are not
// interpreted.
type Constraint struct {
	Name        string
	Description string
	Predicate   Predicate
	References  []Symbol
}

func (c Constraint) String() string { return "Constraint(" + c.Name + ")" }

// ImportDecl declares a dependency on another domain language by name.
// It is resolved only against a composition graph.
type ImportDecl struct {
	Target string
}

func (i ImportDecl) String() string { return "Import(" + i.Target + ")" }
