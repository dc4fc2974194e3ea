// Package monitoring exposes the Prometheus endpoint and small helpers that
// record domain metrics from internal/metrics.
package monitoring

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/platformbuilds/studygraph/internal/metrics"
)

// SetupPrometheusMetrics mounts the default registry on path.
func SetupPrometheusMetrics(router *gin.Engine, path string) {
	if path == "" {
		path = "/metrics"
	}
	router.GET(path, gin.WrapH(promhttp.Handler()))
}

func RecordCacheOperation(operation, result string) {
	metrics.CacheRequestsTotal.WithLabelValues(operation, result).Inc()
}

func RecordStoreOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	metrics.StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordGraphBuild counts a graph served from source ("built" or "cache").
func RecordGraphBuild(mode, source string, duration time.Duration, nodes int) {
	metrics.GraphBuildsTotal.WithLabelValues(mode, source).Inc()
	if source == "built" {
		metrics.GraphBuildDuration.WithLabelValues(mode).Observe(duration.Seconds())
		metrics.GraphNodes.WithLabelValues(mode).Observe(float64(nodes))
	}
}

func RecordImport(status string, imported, dropped int) {
	metrics.ImportBatchesTotal.WithLabelValues(status).Inc()
	if imported > 0 {
		metrics.ImportRowsTotal.WithLabelValues("imported").Add(float64(imported))
	}
	if dropped > 0 {
		metrics.ImportRowsTotal.WithLabelValues("dropped").Add(float64(dropped))
	}
}

func SetStudyCount(n int) {
	metrics.StudiesTotal.Set(float64(n))
}
