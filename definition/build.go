package definition

import (
	"fmt"
	"strings"

	"github.com/c360studio/domainlang/celcond"
	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/doml"
)

var valueTypes = map[string]doml.ValueType{
	"":       doml.TypeUntyped,
	"string": doml.TypeString,
	"int":    doml.TypeInt,
	"float":  doml.TypeFloat,
	"bool":   doml.TypeBool,
}

var optionalities = map[string]doml.Optionality{
	"":                   doml.Required,
	"required":           doml.Required,
	"optional":           doml.Optional,
	"unknown_admissible": doml.UnknownAdmissible,
}

// Build turns the document into a composition graph. Structure (entity
// types, attributes, operations, relations, imports, edges) is built
// first so rule targets and relation endpoints can reference elements
// from any language in the document; rules and constraints follow, with
// their CEL expressions compiled through compiler. A rule's overrides
// field must name a rule declared earlier in the same language.
func (d *Document) Build(compiler *celcond.Compiler) (*composition.Graph, error) {
	b := &builder{
		graph:     composition.NewGraph(),
		langs:     make(map[string]*doml.DomainLanguage),
		entities:  make(map[string]doml.EntityType),
		relations: make(map[string]doml.Relation),
	}

	if err := b.buildStructure(d); err != nil {
		return nil, err
	}
	if err := b.buildRules(d, compiler); err != nil {
		return nil, err
	}
	return b.graph, nil
}

type builder struct {
	graph     *composition.Graph
	langs     map[string]*doml.DomainLanguage
	entities  map[string]doml.EntityType
	relations map[string]doml.Relation
}

func (b *builder) buildStructure(d *Document) error {
	// Entities first, across all languages, so relations can span them.
	for _, ld := range d.Languages {
		if ld.Name == "" {
			return fmt.Errorf("language with empty name")
		}
		lang := doml.NewLanguage(ld.Name)
		if err := b.graph.AddLanguage(lang); err != nil {
			return err
		}
		b.langs[ld.Name] = lang

		for _, imp := range ld.Imports {
			lang.AddImport(imp)
		}
		for _, ed := range ld.Entities {
			entity := lang.AddEntity(ed.Name)
			if _, exists := b.entities[ed.Name]; !exists {
				b.entities[ed.Name] = entity
			}
			for _, ad := range ed.Attributes {
				vt, ok := valueTypes[ad.Type]
				if !ok {
					return fmt.Errorf("language %q: attribute %s.%s has unknown type %q",
						ld.Name, ed.Name, ad.Name, ad.Type)
				}
				opt, ok := optionalities[ad.Optionality]
				if !ok {
					return fmt.Errorf("language %q: attribute %s.%s has unknown optionality %q",
						ld.Name, ed.Name, ad.Name, ad.Optionality)
				}
				lang.AddAttribute(entity, ad.Name, doml.WithType(vt), doml.WithOptionality(opt))
			}
		}
		for _, op := range ld.Operations {
			lang.AddOperation(op)
		}
	}

	for _, ld := range d.Languages {
		lang := b.langs[ld.Name]
		for _, rd := range ld.Relations {
			source, ok := b.entities[rd.Source]
			if !ok {
				return fmt.Errorf("language %q: relation %q source %q is not a declared entity",
					ld.Name, rd.Name, rd.Source)
			}
			target, ok := b.entities[rd.Target]
			if !ok {
				return fmt.Errorf("language %q: relation %q target %q is not a declared entity",
					ld.Name, rd.Name, rd.Target)
			}
			rel := lang.AddRelation(rd.Name, source, target)
			if _, exists := b.relations[rd.Name]; !exists {
				b.relations[rd.Name] = rel
			}
		}
	}

	for _, ed := range d.Edges {
		if err := b.graph.AddEdge(ed.Source, ed.Target); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildRules(d *Document, compiler *celcond.Compiler) error {
	for _, ld := range d.Languages {
		lang := b.langs[ld.Name]
		byID := make(map[string]*doml.NormativeRule)

		for _, rd := range ld.Rules {
			op := doml.Operator(rd.Operator)
			if !op.Valid() {
				return fmt.Errorf("language %q: rule %q has unknown operator %q", ld.Name, rd.ID, rd.Operator)
			}
			element, err := b.resolveTarget(ld.Name, rd.Target)
			if err != nil {
				return fmt.Errorf("language %q: rule %q: %w", ld.Name, rd.ID, err)
			}

			var opts []doml.RuleOption
			if rd.Description != "" {
				opts = append(opts, doml.WithDescription(rd.Description))
			}
			if rd.Condition != "" {
				desc := rd.Description
				if desc == "" {
					desc = fmt.Sprintf("%s(%s) condition met", op, element)
				}
				cond, err := compiler.Condition(rd.Condition, desc)
				if err != nil {
					return fmt.Errorf("language %q: rule %q: %w", ld.Name, rd.ID, err)
				}
				opts = append(opts, doml.WithCondition(cond))
			}
			if rd.Overrides != "" {
				overridden, ok := byID[rd.Overrides]
				if !ok {
					return fmt.Errorf("language %q: rule %q overrides unknown rule %q",
						ld.Name, rd.ID, rd.Overrides)
				}
				opts = append(opts, doml.WithOverride(overridden))
			}

			rule := lang.AddRule(op, element, opts...)
			if rd.ID != "" {
				if _, dup := byID[rd.ID]; dup {
					return fmt.Errorf("language %q: duplicate rule id %q", ld.Name, rd.ID)
				}
				byID[rd.ID] = rule
			}
		}

		for _, cd := range ld.Constraints {
			pred, err := compiler.Predicate(cd.Expression)
			if err != nil {
				return fmt.Errorf("language %q: constraint %q: %w", ld.Name, cd.Name, err)
			}
			lang.AddConstraint(cd.Name, cd.Description, pred)
		}
	}
	return nil
}

// resolveTarget parses the short target reference syntax: "op:verify",
// "rel:forPatient", "Drug.name", "Drug".
func (b *builder) resolveTarget(langName, ref string) (doml.Symbol, error) {
	switch {
	case strings.HasPrefix(ref, "op:"):
		name := strings.TrimPrefix(ref, "op:")
		for _, op := range b.langs[langName].Operations() {
			if op.Name == name {
				return op, nil
			}
		}
		return nil, fmt.Errorf("target references unknown operation %q", name)

	case strings.HasPrefix(ref, "rel:"):
		name := strings.TrimPrefix(ref, "rel:")
		if rel, ok := b.relations[name]; ok {
			return rel, nil
		}
		return nil, fmt.Errorf("target references unknown relation %q", name)

	case strings.Contains(ref, "."):
		parts := strings.SplitN(ref, ".", 2)
		entity, ok := b.entities[parts[0]]
		if !ok {
			return nil, fmt.Errorf("target references unknown entity %q", parts[0])
		}
		for _, lang := range b.langs {
			if attr, ok := lang.Attribute(entity, parts[1]); ok {
				return attr, nil
			}
		}
		return nil, fmt.Errorf("target references unknown attribute %q", ref)

	default:
		if entity, ok := b.entities[ref]; ok {
			return entity, nil
		}
		return nil, fmt.Errorf("target references unknown element %q", ref)
	}
}
