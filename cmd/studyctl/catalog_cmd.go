package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platformbuilds/studygraph/internal/bootstrap"
	"github.com/platformbuilds/studygraph/internal/catalog"
)

func newCatalogCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective catalog as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			cat, err := bootstrap.LoadCatalog(cfg, log)
			if err != nil {
				return err
			}
			raw, err := catalog.Marshal(cat.Tables())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Validate a catalog file and list vertical conflicts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: %d products, %d verticals\n", len(cat.Products()), len(cat.Verticals()))
			for _, c := range cat.Conflicts() {
				fmt.Fprintf(out, "conflict: %s\n", c)
			}
			return nil
		},
	})
	return cmd
}
