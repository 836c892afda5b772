package main

import (
	"os"

	"github.com/spf13/cobra"

	shapecheck "github.com/shapecheck/shapecheck"
)

func newExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <schema>",
		Short: "Reload a schema document and print it in canonical form",
		Long: `Export loads a schema document and re-serializes the compiled model back to
the declarative form. The output validates the same set of candidates as the
input; use it to canonicalize hand-edited schema files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := shapecheck.LoadFile(args[0])
			if err != nil {
				return err
			}
			b, err := doc.ExportBytes()
			if err != nil {
				return err
			}
			b = append(b, '\n')
			if output != "" {
				return os.WriteFile(output, b, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
