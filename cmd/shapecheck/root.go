package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errViolationsFound signals a completed run that found violations. The report
// has already been written when this surfaces; main maps it to exit code 1.
var errViolationsFound = errors.New("violations found")

// newRootCommand creates a fresh command tree. The factory pattern keeps tests
// free of shared flag state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shapecheck",
		Short: "Validate configuration documents against declarative schemas",
		Long: `Shapecheck validates JSON/YAML/TOML configuration documents against
declarative schema documents and reports every mismatch with a JSON Pointer
path.

Examples:
  shapecheck validate -s plugin.schema.json plugin.json
  shapecheck export marketplace.schema.json
  shapecheck catalog validate marketplace.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newCatalogCommand())
	return cmd
}
