package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/platformbuilds/studygraph/internal/filter"
	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/quarter"
)

type queryFlags struct {
	search    string
	types     []string
	verticals []string
	levels    []string
}

func (q *queryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.search, "query", "q", "", "Substring search")
	cmd.Flags().StringSliceVar(&q.types, "type", nil, "Initiative type labels")
	cmd.Flags().StringSliceVar(&q.verticals, "vertical", nil, "Vertical codes")
	cmd.Flags().StringSliceVar(&q.levels, "level", nil, "Level keys")
}

func (q *queryFlags) query() graph.Query {
	return graph.Query{
		Search: q.search,
		Filters: filter.Selection{
			Types:     filter.NewSet(q.types...),
			Verticals: filter.NewSet(q.verticals...),
			Levels:    filter.NewSet(q.levels...),
		},
	}
}

func newListCmd(g *globalFlags) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List studies matching the search and filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.runtime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			for _, st := range rt.Studies.Search(q.query()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", st.ID, st.Quarter, st.VerticalCode, st.TitleShort)
			}
			return nil
		},
	}
	q.bind(cmd)
	return cmd
}

func newGraphCmd(g *globalFlags) *cobra.Command {
	var (
		q       queryFlags
		product string
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the product graph, or the global graph when --product is empty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.runtime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if product == "" {
				out, err := rt.Studies.GlobalGraph(cmd.Context(), q.query())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			out, err := rt.Studies.ScopedGraph(cmd.Context(), product, q.query())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	q.bind(cmd)
	cmd.Flags().StringVar(&product, "product", "", "Product id")
	return cmd
}

func newNextIDCmd(g *globalFlags) *cobra.Command {
	var typeCode string
	cmd := &cobra.Command{
		Use:   "next-id",
		Short: "Preview the id the next study of a type would get",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := g.runtime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			if typeCode != "" {
				if _, ok := rt.Catalog.TypeByCode(typeCode); !ok {
					return fmt.Errorf("unknown initiative type %s", typeCode)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rt.Studies.NextID(typeCode))
			return err
		},
	}
	cmd.Flags().StringVar(&typeCode, "type", "A_0.001", "Initiative type code")
	return cmd
}

func newQuarterCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "quarter",
		Short: "Print the quarter token for today or --date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := quarter.Current()
			if date != "" {
				d, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				token = quarter.Of(d)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	return cmd
}
