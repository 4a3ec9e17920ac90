// Package main provides the domainlang binary entry point. Domainlang
// validates closed-world domain models: it loads a YAML definition of
// one or more domain languages, self-validates the definition, and
// checks asserted worlds against it, either offline or as a NATS
// service.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "domainlang"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Closed-world domain language validator",
		Version: Version,
		Long: `Domainlang validates worlds against composed domain languages.

A definition file declares domain languages (entities, attributes,
operations, relations), the normative rules and constraints over them,
and the composition edges between languages. Worlds are JSON documents
asserting elements and relations; validation runs the five-condition
admissibility and consistency predicate.

Commands:
  lint    Self-validate a definition (rule interactions, closure, structure)
  check   Validate a world file against a definition offline
  serve   Answer validation requests over NATS
`,
	}

	cmd.AddCommand(lintCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(serveCmd())
	return cmd
}
