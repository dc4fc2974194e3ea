// Package loadtest drives concurrent graph builds against a study service
// and reports latency percentiles.
package loadtest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// GraphSource is the part of the study service a load test exercises.
type GraphSource interface {
	ScopedGraph(ctx context.Context, productID string, q graph.Query) (*models.Graph, error)
	GlobalGraph(ctx context.Context, q graph.Query) (*models.Graph, error)
}

type LoadTestConfig struct {
	Duration          time.Duration
	ConcurrentWorkers int
	// Pause between two requests of one worker.
	Think         time.Duration
	QueryPatterns []QueryPattern
}

// QueryPattern is one weighted request shape. An empty Product builds the
// global graph.
type QueryPattern struct {
	Product string
	Search  string
	Weight  int
}

type LoadTestResult struct {
	TotalDuration     time.Duration `json:"totalDuration"`
	TotalQueries      int64         `json:"totalQueries"`
	SuccessfulQueries int64         `json:"successfulQueries"`
	FailedQueries     int64         `json:"failedQueries"`
	AvgQueryTime      time.Duration `json:"avgQueryTime"`
	P95QueryTime      time.Duration `json:"p95QueryTime"`
	P99QueryTime      time.Duration `json:"p99QueryTime"`
	QPS               float64       `json:"qps"`
	AvgNodes          float64       `json:"avgNodes"`
	Errors            []string      `json:"errors,omitempty"`
}

const maxReportedErrors = 20

type LoadTester struct {
	config *LoadTestConfig
	source GraphSource
	logger logger.Logger
	rng    *rand.Rand
	rngMu  sync.Mutex
}

func NewLoadTester(config *LoadTestConfig, source GraphSource, logger logger.Logger) (*LoadTester, error) {
	if source == nil {
		return nil, errors.New("graph source not set")
	}
	if config.ConcurrentWorkers <= 0 {
		return nil, fmt.Errorf("concurrent workers must be positive, got %d", config.ConcurrentWorkers)
	}
	if len(config.QueryPatterns) == 0 {
		config.QueryPatterns = []QueryPattern{{Weight: 1}}
	}
	for _, p := range config.QueryPatterns {
		if p.Weight <= 0 {
			return nil, fmt.Errorf("pattern %q/%q needs a positive weight", p.Product, p.Search)
		}
	}
	return &LoadTester{
		config: config,
		source: source,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

type workerStats struct {
	times  []time.Duration
	nodes  int64
	failed int64
	errs   []string
}

// RunLoadTest runs until the configured duration elapses or ctx is done.
func (lt *LoadTester) RunLoadTest(ctx context.Context) (*LoadTestResult, error) {
	lt.logger.Info("Starting load test", "duration", lt.config.Duration, "workers", lt.config.ConcurrentWorkers)

	testCtx, cancel := context.WithTimeout(ctx, lt.config.Duration)
	defer cancel()

	start := time.Now()
	stats := make([]workerStats, lt.config.ConcurrentWorkers)
	var wg sync.WaitGroup
	for i := range stats {
		wg.Add(1)
		go func(st *workerStats) {
			defer wg.Done()
			lt.worker(testCtx, st)
		}(&stats[i])
	}
	wg.Wait()

	res := &LoadTestResult{TotalDuration: time.Since(start)}
	var times []time.Duration
	var nodes int64
	for _, st := range stats {
		times = append(times, st.times...)
		nodes += st.nodes
		res.FailedQueries += st.failed
		for _, e := range st.errs {
			if len(res.Errors) < maxReportedErrors {
				res.Errors = append(res.Errors, e)
			}
		}
	}
	res.SuccessfulQueries = int64(len(times))
	res.TotalQueries = res.SuccessfulQueries + res.FailedQueries

	if len(times) > 0 {
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		res.AvgQueryTime = calculateAverage(times)
		res.P95QueryTime = calculatePercentile(times, 95)
		res.P99QueryTime = calculatePercentile(times, 99)
		res.AvgNodes = float64(nodes) / float64(len(times))
	}
	if secs := res.TotalDuration.Seconds(); secs > 0 {
		res.QPS = float64(res.TotalQueries) / secs
	}

	lt.logger.Info("Load test completed",
		"total_queries", res.TotalQueries,
		"failed_queries", res.FailedQueries,
		"p95", res.P95QueryTime,
		"qps", res.QPS)

	return res, nil
}

func (lt *LoadTester) worker(ctx context.Context, st *workerStats) {
	for ctx.Err() == nil {
		p := lt.selectRandomPattern()

		start := time.Now()
		g, err := lt.execute(ctx, p)
		elapsed := time.Since(start)

		switch {
		case err != nil && ctx.Err() != nil:
			// Cut off by the deadline; not a failure.
			return
		case err != nil:
			st.failed++
			if len(st.errs) < maxReportedErrors {
				st.errs = append(st.errs, err.Error())
			}
		default:
			st.times = append(st.times, elapsed)
			st.nodes += int64(len(g.Nodes))
		}

		if lt.config.Think > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(lt.config.Think):
			}
		}
	}
}

// selectRandomPattern picks a pattern with probability proportional to its weight.
func (lt *LoadTester) selectRandomPattern() QueryPattern {
	total := 0
	for _, p := range lt.config.QueryPatterns {
		total += p.Weight
	}

	lt.rngMu.Lock()
	r := lt.rng.Intn(total)
	lt.rngMu.Unlock()

	cumulative := 0
	for _, p := range lt.config.QueryPatterns {
		cumulative += p.Weight
		if r < cumulative {
			return p
		}
	}
	return lt.config.QueryPatterns[0]
}

func (lt *LoadTester) execute(ctx context.Context, p QueryPattern) (*models.Graph, error) {
	q := graph.Query{Search: p.Search}
	if p.Product == "" {
		return lt.source.GlobalGraph(ctx, q)
	}
	return lt.source.ScopedGraph(ctx, p.Product, q)
}

func calculateAverage(times []time.Duration) time.Duration {
	if len(times) == 0 {
		return 0
	}
	var sum time.Duration
	for _, t := range times {
		sum += t
	}
	return sum / time.Duration(len(times))
}

// calculatePercentile expects times sorted ascending.
func calculatePercentile(times []time.Duration, percentile float64) time.Duration {
	if len(times) == 0 {
		return 0
	}
	index := int(float64(len(times)-1) * percentile / 100.0)
	return times[index]
}
