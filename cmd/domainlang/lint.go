package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/domainlang/celcond"
	"github.com/c360studio/domainlang/composition"
	"github.com/c360studio/domainlang/definition"
	"github.com/c360studio/domainlang/validate"
)

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <definition.yaml>",
		Short: "Self-validate a domain-language definition",
		Long: `Lint loads a definition, builds the composition graph, and runs the
definition-level checks: structural validation of the import graph,
pairwise normative rule interactions, vocabulary closure, and orphan
detection. Exit status is non-zero when any error-severity finding is
present; warnings are printed but do not fail the lint.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			fmt.Print(result.Summary())
			if !result.IsValid() {
				os.Exit(1)
			}
			return nil
		},
	}
}

// loadGraph builds and self-validates a definition file.
func loadGraph(path string) (*composition.Graph, validate.SelfValidationResult, error) {
	compiler, err := celcond.NewCompiler()
	if err != nil {
		return nil, validate.SelfValidationResult{}, err
	}
	doc, err := definition.LoadFile(path)
	if err != nil {
		return nil, validate.SelfValidationResult{}, err
	}
	g, err := doc.Build(compiler)
	if err != nil {
		return nil, validate.SelfValidationResult{}, err
	}
	return g, validate.SelfValidate(g), nil
}
