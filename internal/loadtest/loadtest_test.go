package loadtest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/repo"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

type countingSource struct {
	scoped, global atomic.Int64
	fail           bool
}

func (c *countingSource) ScopedGraph(_ context.Context, productID string, _ graph.Query) (*models.Graph, error) {
	c.scoped.Add(1)
	if c.fail {
		return nil, errors.New("unknown product " + productID)
	}
	return &models.Graph{Nodes: make([]models.Node, 3)}, nil
}

func (c *countingSource) GlobalGraph(context.Context, graph.Query) (*models.Graph, error) {
	c.global.Add(1)
	return &models.Graph{Nodes: make([]models.Node, 1)}, nil
}

func TestLoadTestAgainstStudyService(t *testing.T) {
	log := logger.NewNop()
	svc := services.NewStudyService(repo.NewDefaultStudyRepo(repo.NewMemoryStore(), "", log), catalog.Default(), services.StudyServiceConfig{}, log)
	require.NoError(t, svc.Init(context.Background()))

	tester, err := NewLoadTester(&LoadTestConfig{
		Duration:          200 * time.Millisecond,
		ConcurrentWorkers: 2,
		QueryPatterns: []QueryPattern{
			{Product: "flow", Weight: 3},
			{Search: "music", Weight: 1},
		},
	}, svc, log)
	require.NoError(t, err)

	res, err := tester.RunLoadTest(context.Background())
	require.NoError(t, err)
	assert.Positive(t, res.TotalQueries)
	assert.Zero(t, res.FailedQueries)
	assert.LessOrEqual(t, res.P95QueryTime, res.P99QueryTime)
	assert.Positive(t, res.AvgNodes)
}

func TestLoadTestRespectsWeights(t *testing.T) {
	src := &countingSource{}
	tester, err := NewLoadTester(&LoadTestConfig{
		Duration:          100 * time.Millisecond,
		ConcurrentWorkers: 1,
		QueryPatterns:     []QueryPattern{{Product: "flow", Weight: 1}},
	}, src, logger.NewNop())
	require.NoError(t, err)

	res, err := tester.RunLoadTest(context.Background())
	require.NoError(t, err)
	assert.Positive(t, src.scoped.Load())
	assert.Zero(t, src.global.Load())
	assert.Equal(t, 3.0, res.AvgNodes)
}

func TestLoadTestCountsFailures(t *testing.T) {
	src := &countingSource{fail: true}
	tester, err := NewLoadTester(&LoadTestConfig{
		Duration:          50 * time.Millisecond,
		ConcurrentWorkers: 1,
		Think:             time.Millisecond,
		QueryPatterns:     []QueryPattern{{Product: "nope", Weight: 1}},
	}, src, logger.NewNop())
	require.NoError(t, err)

	res, err := tester.RunLoadTest(context.Background())
	require.NoError(t, err)
	assert.Positive(t, res.FailedQueries)
	assert.Zero(t, res.SuccessfulQueries)
	assert.LessOrEqual(t, len(res.Errors), maxReportedErrors)
	assert.Contains(t, res.Errors[0], "unknown product nope")
}

func TestNewLoadTesterValidation(t *testing.T) {
	_, err := NewLoadTester(&LoadTestConfig{ConcurrentWorkers: 1}, nil, logger.NewNop())
	assert.Error(t, err)

	_, err = NewLoadTester(&LoadTestConfig{}, &countingSource{}, logger.NewNop())
	assert.Error(t, err)

	_, err = NewLoadTester(&LoadTestConfig{ConcurrentWorkers: 1, QueryPatterns: []QueryPattern{{Weight: 0}}}, &countingSource{}, logger.NewNop())
	assert.Error(t, err)
}

func TestCalculatePercentile(t *testing.T) {
	times := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, time.Duration(9), calculatePercentile(times, 95))
	assert.Equal(t, time.Duration(1), calculatePercentile(times, 0))
	assert.Equal(t, time.Duration(5), calculateAverage(times))
	assert.Zero(t, calculatePercentile(nil, 99))
}

func BenchmarkGlobalGraph(b *testing.B) {
	log := logger.NewNop()
	svc := services.NewStudyService(repo.NewDefaultStudyRepo(repo.NewMemoryStore(), "", log), nil, services.StudyServiceConfig{}, log)
	if err := svc.Init(context.Background()); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.GlobalGraph(context.Background(), graph.Query{}); err != nil {
			b.Fatal(err)
		}
	}
}
