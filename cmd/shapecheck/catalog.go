package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	shapecheck "github.com/shapecheck/shapecheck"
	"github.com/shapecheck/shapecheck/catalog"
	"github.com/shapecheck/shapecheck/report"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with plugin marketplace catalogs",
	}
	cmd.AddCommand(newCatalogValidateCommand())
	cmd.AddCommand(newCatalogRefreshCommand())
	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a marketplace.json or plugin.json against the built-in schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var vs shapecheck.Violations
			switch kind {
			case "marketplace":
				vs, err = catalog.ValidateMarketplace(raw)
			case "plugin":
				vs, err = catalog.ValidateManifest(raw)
			default:
				return fmt.Errorf("unknown kind %q (marketplace, plugin)", kind)
			}
			if err != nil {
				return err
			}
			if len(vs) == 0 {
				return nil
			}
			if err := report.WriteHuman(cmd.ErrOrStderr(), vs); err != nil {
				return err
			}
			return errViolationsFound
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "marketplace", "File kind (marketplace, plugin)")
	return cmd
}

func newCatalogRefreshCommand() *cobra.Command {
	var (
		manifestSpecs []string
		write         bool
	)
	cmd := &cobra.Command{
		Use:   "refresh <marketplace.json>",
		Short: "Merge local plugin manifests into a marketplace catalog",
		Long: `Refresh merges plugin.json manifests into the matching catalog entries
(matched by github repo) and bumps the marketplace version when anything
changed. Manifests are read from local files; nothing is fetched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			market, err := catalog.ParseMarketplace(raw)
			if err != nil {
				return err
			}

			manifests := make(map[string]catalog.Manifest, len(manifestSpecs))
			for _, spec := range manifestSpecs {
				repo, path, ok := strings.Cut(spec, "=")
				if !ok {
					return fmt.Errorf("--manifest wants owner/repo=path, got %q", spec)
				}
				mb, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				man, err := catalog.ParseManifest(mb)
				if err != nil {
					return fmt.Errorf("manifest %s: %w", path, err)
				}
				manifests[repo] = *man
			}

			changed, err := market.Refresh(manifests)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "no plugin changes detected")
				return nil
			}
			out, err := market.Encode()
			if err != nil {
				return err
			}
			if write {
				if err := os.WriteFile(args[0], out, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "marketplace version: %s\n", market.Metadata.Version)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&manifestSpecs, "manifest", nil, "Local manifest as owner/repo=path (repeatable)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the refreshed catalog back to the file")
	return cmd
}
