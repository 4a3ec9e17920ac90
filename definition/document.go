package definition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the top-level YAML structure: the languages of a closed
// world plus the composition edges between them.
type Document struct {
	Languages []LanguageDoc `yaml:"languages"`
	Edges     []EdgeDoc     `yaml:"edges"`
}

// LanguageDoc declares a single domain language.
type LanguageDoc struct {
	Name        string          `yaml:"name"`
	Imports     []string        `yaml:"imports"`
	Entities    []EntityDoc     `yaml:"entities"`
	Operations  []string        `yaml:"operations"`
	Relations   []RelationDoc   `yaml:"relations"`
	Rules       []RuleDoc       `yaml:"rules"`
	Constraints []ConstraintDoc `yaml:"constraints"`
}

// EntityDoc declares an entity type and its attributes.
type EntityDoc struct {
	Name       string         `yaml:"name"`
	Attributes []AttributeDoc `yaml:"attributes"`
}

// AttributeDoc declares an attribute. Type and optionality are optional;
// they default to untyped and required.
type AttributeDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Optionality string `yaml:"optionality"`
}

// RelationDoc declares a directed relation kind between two entity
// types. Endpoints may name entities from other languages in the same
// document.
type RelationDoc struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// RuleDoc declares a normative rule. Target uses a short reference
// syntax: "Drug" for an entity, "Drug.name" for an attribute,
// "rel:forPatient" for a relation, "op:verify" for an operation.
// Condition is a CEL expression over the "world" variable; when empty
// the rule is unconditional. Overrides names the ID of a rule in the
// same language this rule intentionally replaces.
type RuleDoc struct {
	ID          string `yaml:"id"`
	Operator    string `yaml:"operator"`
	Target      string `yaml:"target"`
	Condition   string `yaml:"condition"`
	Description string `yaml:"description"`
	Overrides   string `yaml:"overrides"`
}

// ConstraintDoc declares a cross-element constraint as a CEL expression
// that must hold for the world to be valid.
type ConstraintDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Expression  string `yaml:"expression"`
}

// EdgeDoc declares a directed composition edge between two languages.
type EdgeDoc struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if len(doc.Languages) == 0 {
		return nil, fmt.Errorf("parse definition: no languages declared")
	}
	return &doc, nil
}

// LoadFile reads and parses a definition file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition %s: %w", path, err)
	}
	return Parse(data)
}
