package doml

import "fmt"

// DomainLanguage is a named, closed vocabulary plus its normative rules
// and constraints: entities, typed attributes, operations, relations,
// rules, invariants, and import declarations.
//
// The builder methods insert without validating; Self-QC and the closure
// check flag incoherent definitions after the fact. Iteration order over
// every collection is insertion order, so diagnostics are deterministic.
type DomainLanguage struct {
	name string

	entities    []EntityType
	entityIdx   map[string]int
	attributes  map[string][]Attribute // keyed by entity name
	operations  []OperationType
	opIdx       map[string]int
	relations   []Relation
	relationIdx map[string]int
	rules       []*NormativeRule
	constraints []Constraint
	imports     []ImportDecl
	importIdx   map[string]int
}

// NewLanguage creates an empty domain language.
func NewLanguage(name string) *DomainLanguage {
	return &DomainLanguage{
		name:        name,
		entityIdx:   make(map[string]int),
		attributes:  make(map[string][]Attribute),
		opIdx:       make(map[string]int),
		relationIdx: make(map[string]int),
		importIdx:   make(map[string]int),
	}
}

// Name returns the language name, its identity within a composition graph.
func (l *DomainLanguage) Name() string { return l.name }

// AddEntity declares an entity type. Declaring the same name twice yields
// the same entity.
func (l *DomainLanguage) AddEntity(name string) EntityType {
	if i, ok := l.entityIdx[name]; ok {
		return l.entities[i]
	}
	e := EntityType{Name: name}
	l.entityIdx[name] = len(l.entities)
	l.entities = append(l.entities, e)
	return e
}

// AttributeOption configures a declared attribute.
type AttributeOption func(*Attribute)

// WithType tags the attribute's value type.
func WithType(t ValueType) AttributeOption {
	return func(a *Attribute) { a.Type = t }
}

// WithOptionality sets the attribute's presence constraint.
func WithOptionality(o Optionality) AttributeOption {
	return func(a *Attribute) { a.Optionality = o }
}

// AddAttribute declares a typed attribute on an entity. Defaults:
// untyped, required.
func (l *DomainLanguage) AddAttribute(entity EntityType, name string, opts ...AttributeOption) Attribute {
	a := Attribute{Entity: entity, Name: name, Type: TypeUntyped, Optionality: Required}
	for _, opt := range opts {
		opt(&a)
	}
	l.attributes[entity.Name] = append(l.attributes[entity.Name], a)
	return a
}

// AddOperation declares an admissible operation.
func (l *DomainLanguage) AddOperation(name string) OperationType {
	if i, ok := l.opIdx[name]; ok {
		return l.operations[i]
	}
	o := OperationType{Name: name}
	l.opIdx[name] = len(l.operations)
	l.operations = append(l.operations, o)
	return o
}

// AddRelation declares an admissible directed relation between entity types.
func (l *DomainLanguage) AddRelation(name string, source, target EntityType) Relation {
	if i, ok := l.relationIdx[name]; ok {
		return l.relations[i]
	}
	r := Relation{Name: name, Source: source, Target: target}
	l.relationIdx[name] = len(l.relations)
	l.relations = append(l.relations, r)
	return r
}

// AddImport declares a dependency on another domain language by name.
func (l *DomainLanguage) AddImport(target string) ImportDecl {
	if i, ok := l.importIdx[target]; ok {
		return l.imports[i]
	}
	d := ImportDecl{Target: target}
	l.importIdx[target] = len(l.imports)
	l.imports = append(l.imports, d)
	return d
}

// RuleOption configures a normative rule.
type RuleOption func(*NormativeRule)

// WithCondition attaches a condition, making the rule conditional.
func WithCondition(c Condition) RuleOption {
	return func(r *NormativeRule) { r.Target.Condition = c }
}

// WithDescription attaches a human-readable description to the target.
func WithDescription(desc string) RuleOption {
	return func(r *NormativeRule) { r.Target.Description = desc }
}

// WithOverride marks the rule as intentionally replacing another rule.
func WithOverride(overridden *NormativeRule) RuleOption {
	return func(r *NormativeRule) { r.Overrides = overridden }
}

// AddRule applies a normative operator to a vocabulary symbol.
func (l *DomainLanguage) AddRule(op Operator, element Symbol, opts ...RuleOption) *NormativeRule {
	r := &NormativeRule{Operator: op, Target: NormativeTarget{Element: element}}
	for _, opt := range opts {
		opt(r)
	}
	l.rules = append(l.rules, r)
	return r
}

// Must obligates the element.
func (l *DomainLanguage) Must(element Symbol, opts ...RuleOption) *NormativeRule {
	return l.AddRule(OpMust, element, opts...)
}

// MustNot prohibits the element.
func (l *DomainLanguage) MustNot(element Symbol, opts ...RuleOption) *NormativeRule {
	return l.AddRule(OpMustNot, element, opts...)
}

// Should recommends the element.
func (l *DomainLanguage) Should(element Symbol, opts ...RuleOption) *NormativeRule {
	return l.AddRule(OpShould, element, opts...)
}

// ShouldNot discourages the element.
func (l *DomainLanguage) ShouldNot(element Symbol, opts ...RuleOption) *NormativeRule {
	return l.AddRule(OpShouldNot, element, opts...)
}

// May permits the element.
func (l *DomainLanguage) May(element Symbol, opts ...RuleOption) *NormativeRule {
	return l.AddRule(OpMay, element, opts...)
}

// AddConstraint declares a named invariant predicate.
func (l *DomainLanguage) AddConstraint(name, description string, pred Predicate, refs ...Symbol) Constraint {
	c := Constraint{Name: name, Description: description, Predicate: pred, References: refs}
	l.constraints = append(l.constraints, c)
	return c
}

// Entities returns the declared entity types in insertion order.
func (l *DomainLanguage) Entities() []EntityType {
	out := make([]EntityType, len(l.entities))
	copy(out, l.entities)
	return out
}

// Entity looks up an entity type by name.
func (l *DomainLanguage) Entity(name string) (EntityType, bool) {
	if i, ok := l.entityIdx[name]; ok {
		return l.entities[i], true
	}
	return EntityType{}, false
}

// AttributesOf returns the attributes declared on an entity, in order.
func (l *DomainLanguage) AttributesOf(entity EntityType) []Attribute {
	attrs := l.attributes[entity.Name]
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}

// Attribute looks up an attribute by entity and name.
func (l *DomainLanguage) Attribute(entity EntityType, name string) (Attribute, bool) {
	for _, a := range l.attributes[entity.Name] {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Operations returns the declared operations in insertion order.
func (l *DomainLanguage) Operations() []OperationType {
	out := make([]OperationType, len(l.operations))
	copy(out, l.operations)
	return out
}

// Relations returns the declared relations in insertion order.
func (l *DomainLanguage) Relations() []Relation {
	out := make([]Relation, len(l.relations))
	copy(out, l.relations)
	return out
}

// Relation looks up a declared relation by name.
func (l *DomainLanguage) Relation(name string) (Relation, bool) {
	if i, ok := l.relationIdx[name]; ok {
		return l.relations[i], true
	}
	return Relation{}, false
}

// Rules returns the normative rules in insertion order.
func (l *DomainLanguage) Rules() []*NormativeRule {
	out := make([]*NormativeRule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Constraints returns the declared constraints in insertion order.
func (l *DomainLanguage) Constraints() []Constraint {
	out := make([]Constraint, len(l.constraints))
	copy(out, l.constraints)
	return out
}

// Imports returns the import declarations in insertion order.
func (l *DomainLanguage) Imports() []ImportDecl {
	out := make([]ImportDecl, len(l.imports))
	copy(out, l.imports)
	return out
}

// Vocab returns the language vocabulary keyed by symbol key: the union of
// entities, all attributes, and operations. Relations and normative rules
// are deliberately excluded; they are admissibility and obligation
// artifacts, not named things.
func (l *DomainLanguage) Vocab() map[string]Symbol {
	v := make(map[string]Symbol)
	for _, e := range l.entities {
		v[e.Key()] = e
	}
	for _, e := range l.entities {
		for _, a := range l.attributes[e.Name] {
			v[a.Key()] = a
		}
	}
	for _, o := range l.operations {
		v[o.Key()] = o
	}
	return v
}

// CheckInteractions runs Self-QC over this language's rules.
func (l *DomainLanguage) CheckInteractions() []InteractionDiagnostic {
	return CheckAllInteractions(l.rules)
}

// CheckClosure verifies that every normative-rule target resolves within
// the local vocabulary or, when resolved imports are supplied, the union
// of the local vocabulary and each transitively resolved import's
// vocabulary. Relations are admitted only from the local language: a
// language that wants to regulate an imported relation redeclares it.
// An unresolved import name and an unresolved symbol are reported as
// distinct errors.
func (l *DomainLanguage) CheckClosure(resolvedImports map[string]*DomainLanguage) []string {
	var errs []string

	extended := l.Vocab()
	if resolvedImports != nil {
		for _, imp := range l.imports {
			imported, ok := resolvedImports[imp.Target]
			if !ok {
				errs = append(errs, fmt.Sprintf("unresolved import: %s", imp.Target))
				continue
			}
			for k, s := range imported.Vocab() {
				extended[k] = s
			}
		}
	}
	for _, r := range l.relations {
		extended[r.Key()] = r
	}

	for _, rule := range l.rules {
		if _, ok := extended[rule.Target.Element.Key()]; !ok {
			errs = append(errs, fmt.Sprintf("normative rule %s references unknown element: %s",
				rule, rule.Target.Element))
		}
	}
	return errs
}

func (l *DomainLanguage) String() string {
	attrs := 0
	for _, as := range l.attributes {
		attrs += len(as)
	}
	return fmt.Sprintf("DomainLanguage(%s: %d entities, %d attributes, %d operations, %d rules, %d constraints, %d imports)",
		l.name, len(l.entities), attrs, len(l.operations), len(l.rules), len(l.constraints), len(l.imports))
}
