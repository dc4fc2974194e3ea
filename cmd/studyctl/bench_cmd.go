package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/platformbuilds/studygraph/internal/loadtest"
)

func newBenchCmd(g *globalFlags) *cobra.Command {
	var (
		duration time.Duration
		workers  int
		think    time.Duration
		patterns []string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Build graphs concurrently and report latency percentiles",
		Long: "Each --pattern is product:search:weight. An empty product builds the global graph, " +
			"e.g. --pattern flow::3 --pattern :music:1",
		RunE: func(cmd *cobra.Command, _ []string) error {
			qp, err := parsePatterns(patterns)
			if err != nil {
				return err
			}
			rt, err := g.runtime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			tester, err := loadtest.NewLoadTester(&loadtest.LoadTestConfig{
				Duration:          duration,
				ConcurrentWorkers: workers,
				Think:             think,
				QueryPatterns:     qp,
			}, rt.Studies, g.log)
			if err != nil {
				return err
			}
			res, err := tester.RunLoadTest(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "Test duration")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent workers")
	cmd.Flags().DurationVar(&think, "think", 0, "Pause between requests of one worker")
	cmd.Flags().StringArrayVar(&patterns, "pattern", nil, "product:search:weight (repeatable)")
	return cmd
}

func parsePatterns(raw []string) ([]loadtest.QueryPattern, error) {
	out := make([]loadtest.QueryPattern, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("pattern %q: want product:search:weight", r)
		}
		var w int
		if _, err := fmt.Sscanf(parts[2], "%d", &w); err != nil || w <= 0 {
			return nil, fmt.Errorf("pattern %q: weight must be a positive integer", r)
		}
		out = append(out, loadtest.QueryPattern{Product: parts[0], Search: parts[1], Weight: w})
	}
	return out, nil
}
