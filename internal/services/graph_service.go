package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/platformbuilds/studygraph/internal/filter"
	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/monitoring"
	"github.com/platformbuilds/studygraph/internal/naming"
	"github.com/platformbuilds/studygraph/internal/tracing"
)

// ScopedGraph builds the tree of one product.
func (s *StudyService) ScopedGraph(ctx context.Context, productID string, q graph.Query) (*models.Graph, error) {
	return s.graph(ctx, models.GraphScoped, productID, q)
}

// GlobalGraph builds one band per product with matches.
func (s *StudyService) GlobalGraph(ctx context.Context, q graph.Query) (*models.Graph, error) {
	return s.graph(ctx, models.GraphGlobal, "", q)
}

func (s *StudyService) graph(ctx context.Context, mode models.GraphMode, productID string, q graph.Query) (*models.Graph, error) {
	ctx, span := s.tracer.Start(ctx, "graph.build", "mode", string(mode), "product", productID)
	var err error
	defer func() { tracing.End(span, err) }()

	s.mu.RLock()
	cat := s.catalog
	studies := s.studies
	version := s.version
	s.mu.RUnlock()

	key := s.graphKey(version, mode, productID, q)
	if raw, cerr := s.cache.GetCachedQueryResult(ctx, key); cerr == nil {
		var g models.Graph
		if jerr := json.Unmarshal(raw, &g); jerr == nil {
			monitoring.RecordGraphBuild(string(mode), "cache", 0, len(g.Nodes))
			return &g, nil
		}
		s.logger.Warn("Discarding undecodable cached graph", "key", key)
	}

	// studies is never mutated in place: commits swap in a new slice.
	start := time.Now()
	b := s.builder(cat)
	var g *models.Graph
	if mode == models.GraphScoped {
		g, err = b.BuildScoped(studies, productID, q)
		if err != nil {
			return nil, err
		}
	} else {
		g = b.BuildGlobal(studies, q)
	}
	monitoring.RecordGraphBuild(string(mode), "built", time.Since(start), len(g.Nodes))

	if cerr := s.cache.CacheQueryResult(ctx, key, g, s.cacheTTL); cerr != nil {
		s.logger.Debug("Graph not cached", "key", key, "error", cerr)
	}
	return g, nil
}

// graphKey identifies a build by collection version and normalised query.
func (s *StudyService) graphKey(version uint64, mode models.GraphMode, productID string, q graph.Query) string {
	var sb strings.Builder
	sb.WriteString(naming.NormalizeQuery(q.Search))
	for _, facet := range []filter.Set{
		q.Filters.Types, q.Filters.Quarters, q.Filters.Years, q.Filters.Verticals,
		q.Filters.Responsibles, q.Filters.Techniques, q.Filters.Levels,
	} {
		sb.WriteByte(0)
		sb.WriteString(strings.Join(facet.Values(), "\x1f"))
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return fmt.Sprintf("graph:%s:%d:%s:%s:%s", s.instance, version, mode, productID, hex.EncodeToString(sum[:12]))
}
