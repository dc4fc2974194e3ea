package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/platformbuilds/studygraph/internal/bootstrap"
	"github.com/platformbuilds/studygraph/internal/importer"
)

func newImportCmd(g *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a spreadsheet export and append the studies to the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if dryRun {
				cfg, log, err := g.load()
				if err != nil {
					return err
				}
				cat, err := bootstrap.LoadCatalog(cfg, log)
				if err != nil {
					return err
				}
				res, err := importer.New(cat, cfg.Import.MaxRows, log).Parse(f)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			}

			rt, err := g.runtime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := rt.Studies.Import(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without saving")
	return cmd
}
