package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/platformbuilds/studygraph/internal/bootstrap"
	"github.com/platformbuilds/studygraph/internal/config"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

type globalFlags struct {
	configPath string
	backend    string
	dataDir    string
	verbose    bool

	// set by load
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:          "studyctl",
		Short:        "Study collection tools: import, id allocation, graphs and catalog checks",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (overrides CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&g.backend, "backend", "", "Storage backend override: file|valkey|sqlite|memory")
	cmd.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "Data directory override for the file backend")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log to stderr")

	cmd.AddCommand(
		newImportCmd(g),
		newListCmd(g),
		newNextIDCmd(g),
		newQuarterCmd(),
		newGraphCmd(g),
		newCatalogCmd(g),
		newBenchCmd(g),
	)
	return cmd
}

func (g *globalFlags) load() (*config.Config, logger.Logger, error) {
	if g.configPath != "" {
		if err := os.Setenv("CONFIG_PATH", g.configPath); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if g.backend != "" {
		cfg.Storage.Backend = g.backend
	}
	if g.dataDir != "" {
		cfg.Storage.DataDir = g.dataDir
	}
	// Graphs built by the CLI are short-lived.
	cfg.Cache.Addr = ""

	log := logger.NewNop()
	if g.verbose {
		log = logger.New(cfg.LogLevel)
	}
	g.log = log
	return cfg, log, nil
}

func (g *globalFlags) runtime(ctx context.Context) (*bootstrap.Runtime, error) {
	cfg, log, err := g.load()
	if err != nil {
		return nil, err
	}
	return bootstrap.NewRuntime(ctx, cfg, nil, log)
}
