package config

import (
	"github.com/spf13/viper"

	"github.com/platformbuilds/studygraph/internal/graph"
)

// GetDefaultConfig returns a configuration with all default values
func GetDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Port:        8080,
		LogLevel:    "info",
		Storage: StorageConfig{
			Backend:    "file",
			Key:        "uxr_tree_studies_v4",
			DataDir:    "./data",
			SQLitePath: "./data/studygraph.db",
			Valkey:     ValkeyConfig{Addr: "localhost:6379"},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     300,
		},
		Graph:  GraphConfig{Layout: graph.DefaultLayout()},
		Import: ImportConfig{MaxBytes: 5 << 20, MaxRows: 5000},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           3600,
		},
		WebSocket: WebSocketConfig{
			Enabled:         true,
			MaxConnections:  500,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			PingInterval:    30,
		},
		Monitoring: MonitoringConfig{Enabled: true, MetricsPath: "/metrics"},
		Tracing:    TracingConfig{Enabled: false, Endpoint: "localhost:4317", ServiceName: "studygraph"},
	}
}

// setDefaults mirrors GetDefaultConfig into viper so env-only overrides work.
func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()

	v.SetDefault("environment", d.Environment)
	v.SetDefault("port", d.Port)
	v.SetDefault("log_level", d.LogLevel)

	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.valkey.addr", d.Storage.Valkey.Addr)
	v.SetDefault("storage.valkey.password", "")
	v.SetDefault("storage.valkey.db", 0)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", d.Cache.TTL)

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", false)

	l := d.Graph.Layout
	v.SetDefault("graph.layout.vertical_gap", l.VerticalGap)
	v.SetDefault("graph.layout.subproduct_gap", l.SubproductGap)
	v.SetDefault("graph.layout.depth_step", l.DepthStep)
	v.SetDefault("graph.layout.row_step", l.RowStep)
	v.SetDefault("graph.layout.band_gap", l.BandGap)
	v.SetDefault("graph.layout.node_width", l.NodeWidth)
	v.SetDefault("graph.layout.vertical_y", l.VerticalY)
	v.SetDefault("graph.layout.subproduct_y", l.SubproductY)
	v.SetDefault("graph.layout.study_base_y", l.StudyBaseY)

	v.SetDefault("import.max_bytes", d.Import.MaxBytes)
	v.SetDefault("import.max_rows", d.Import.MaxRows)

	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("cors.allowed_methods", d.CORS.AllowedMethods)
	v.SetDefault("cors.allowed_headers", d.CORS.AllowedHeaders)
	v.SetDefault("cors.allow_credentials", d.CORS.AllowCredentials)
	v.SetDefault("cors.max_age", d.CORS.MaxAge)

	v.SetDefault("websocket.enabled", d.WebSocket.Enabled)
	v.SetDefault("websocket.max_connections", d.WebSocket.MaxConnections)
	v.SetDefault("websocket.read_buffer_size", d.WebSocket.ReadBufferSize)
	v.SetDefault("websocket.write_buffer_size", d.WebSocket.WriteBufferSize)
	v.SetDefault("websocket.ping_interval", d.WebSocket.PingInterval)

	v.SetDefault("monitoring.enabled", d.Monitoring.Enabled)
	v.SetDefault("monitoring.metrics_path", d.Monitoring.MetricsPath)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}
