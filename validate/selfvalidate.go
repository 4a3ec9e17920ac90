package validate

import (
	"fmt"

	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/doml"
)

// SelfValidate checks the domain definition itself, with no instance
// data involved:
//
//  1. structural validation of the graph (cycles, cross-references)
//  2. normative interaction findings within each language
//  3. closure of every rule target against local plus imported vocab
//  4. orphan detection: languages with no edges at all
//
// Interaction findings of severity error become errors; warning and info
// findings become warnings.
func SelfValidate(graph *composition.Graph) SelfValidationResult {
	var result SelfValidationResult

	result.Errors = append(result.Errors, graph.StructuralValidation()...)

	for _, lang := range graph.Languages() {
		for _, diag := range lang.CheckInteractions() {
			msg := fmt.Sprintf("[%s] %s", lang.Name(), diag.Message)
			if diag.Severity == doml.SeverityError {
				result.Errors = append(result.Errors, msg)
			} else {
				result.Warnings = append(result.Warnings, msg)
			}
		}
	}

	resolved := graph.ByName()
	for _, lang := range graph.Languages() {
		for _, err := range lang.CheckClosure(resolved) {
			result.Errors = append(result.Errors, fmt.Sprintf("[%s] %s", lang.Name(), err))
		}
	}

	if len(graph.Languages()) > 1 {
		connected := make(map[string]bool)
		for _, e := range graph.Edges() {
			connected[e.Source] = true
			connected[e.Target] = true
		}
		for _, lang := range graph.Languages() {
			if !connected[lang.Name()] {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("orphaned language: %q has no edges in the graph", lang.Name()))
			}
		}
	}

	return result
}
