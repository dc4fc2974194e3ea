package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/studygraph/internal/filter"
	"github.com/platformbuilds/studygraph/internal/graph"
)

// parseQuery reads q plus the repeatable facet parameters. A facet value may
// also be comma separated: ?technique=Encuesta,Tracking.
func parseQuery(c *gin.Context) graph.Query {
	return graph.Query{
		Search: c.Query("q"),
		Filters: filter.Selection{
			Types:        facet(c, "type"),
			Quarters:     facet(c, "quarter"),
			Years:        facet(c, "year"),
			Verticals:    facet(c, "vertical"),
			Responsibles: facet(c, "responsible"),
			Techniques:   facet(c, "technique"),
			Levels:       facet(c, "level"),
		},
	}
}

func facet(c *gin.Context, name string) filter.Set {
	var values []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return filter.NewSet(values...)
}
