package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/domainlang/doml"
	"github.com/c360studio/domainlang/validate"
)

func checkCmd() *cobra.Command {
	var (
		strictProvenance bool
		outputJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "check <definition.yaml> <world.json>",
		Short: "Validate a world against a definition",
		Long: `Check loads a definition and a world file and runs the five-condition
validation predicate: vocabulary closure, relation admissibility,
completeness with explicit gaps, traceability, and consistency. The
definition must pass self-validation first; rule evaluation only runs
when the world is admissible. Exit status is non-zero when the world is
invalid.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, self, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			if !self.IsValid() {
				fmt.Print(self.Summary())
				return fmt.Errorf("definition failed self-validation")
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read world %s: %w", args[1], err)
			}
			world, err := doml.ParseWorld(data, g)
			if err != nil {
				return err
			}

			var opts []validate.Option
			if strictProvenance {
				opts = append(opts, validate.WithStrictProvenance())
			}
			result := validate.Validate(g, world, opts...)

			if outputJSON {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			} else {
				fmt.Print(result.Summary())
			}

			if !result.IsValid() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strictProvenance, "strict-provenance", false, "fail Traceability on missing provenance")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output the result as JSON")
	return cmd
}
