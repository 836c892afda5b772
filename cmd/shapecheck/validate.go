package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	shapecheck "github.com/shapecheck/shapecheck"
	"github.com/shapecheck/shapecheck/decode"
	"github.com/shapecheck/shapecheck/report"
)

func newValidateCommand() *cobra.Command {
	var (
		schemaPath    string
		outputFormat  string
		inputFormat   string
		failFast      bool
		maxViolations int
	)
	cmd := &cobra.Command{
		Use:   "validate <candidate>",
		Short: "Validate a candidate document against a schema",
		Long: `Validate a JSON/YAML/TOML candidate document against a declarative schema
document. Every violation is reported with its JSON Pointer path; the exit
code is nonzero when any violation is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := shapecheck.LoadFile(schemaPath)
			if err != nil {
				return err
			}

			format := decode.DetectFormat(args[0])
			if inputFormat != "" {
				format, err = decode.ParseFormat(inputFormat)
				if err != nil {
					return err
				}
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			value, err := decode.Bytes(raw, format)
			if err != nil {
				return &shapecheck.CandidateParseError{Err: err}
			}

			vs := doc.Validate(value, shapecheck.Options{
				FailFast:      failFast,
				MaxViolations: maxViolations,
			})
			if len(vs) == 0 {
				return nil
			}
			if outputFormat == "json" {
				if err := report.WriteJSON(cmd.OutOrStdout(), vs); err != nil {
					return err
				}
			} else {
				if err := report.WriteHuman(cmd.ErrOrStderr(), vs); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%d violation(s)\n", len(vs))
			}
			return errViolationsFound
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Schema document path (required)")
	_ = cmd.MarkFlagRequired("schema")
	cmd.Flags().StringVar(&outputFormat, "format", "human", "Output format (human, json)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Candidate format (json, yaml, toml); default: by file extension")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first violation")
	cmd.Flags().IntVar(&maxViolations, "max-violations", 0, "Cap reported violations (0 = unlimited)")
	return cmd
}
