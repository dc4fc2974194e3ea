package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studygraph_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studygraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studygraph_cache_requests_total",
			Help: "Total number of graph cache requests",
		},
		[]string{"operation", "result"}, // get/set, hit/miss/error/success
	)

	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studygraph_store_operations_total",
			Help: "Total number of study collection loads and saves",
		},
		[]string{"operation", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studygraph_store_operation_duration_seconds",
			Help:    "Study collection load/save duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	GraphBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studygraph_graph_builds_total",
			Help: "Total number of graph builds by mode and cache outcome",
		},
		[]string{"mode", "source"}, // scoped/global, built/cache
	)

	GraphBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studygraph_graph_build_duration_seconds",
			Help:    "Graph build duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"mode"},
	)

	GraphNodes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studygraph_graph_nodes",
			Help:    "Number of nodes in built graphs",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10),
		},
		[]string{"mode"},
	)

	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studygraph_import_rows_total",
			Help: "CSV rows processed by outcome",
		},
		[]string{"outcome"}, // imported/dropped
	)

	ImportBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studygraph_import_batches_total",
			Help: "CSV import batches by status",
		},
		[]string{"status"}, // success/rejected/error
	)

	StudiesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studygraph_studies",
			Help: "Number of studies in the collection",
		},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studygraph_websocket_clients",
			Help: "Connected websocket clients",
		},
	)
)
