package config

import "github.com/platformbuilds/studygraph/internal/graph"

type Config struct {
	Environment string `mapstructure:"environment" yaml:"environment"`
	Port        int    `mapstructure:"port" yaml:"port"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`

	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
	Cache      CacheConfig      `mapstructure:"cache" yaml:"cache"`
	Catalog    CatalogConfig    `mapstructure:"catalog" yaml:"catalog"`
	Graph      GraphConfig      `mapstructure:"graph" yaml:"graph"`
	Import     ImportConfig     `mapstructure:"import" yaml:"import"`
	CORS       CORSConfig       `mapstructure:"cors" yaml:"cors"`
	WebSocket  WebSocketConfig  `mapstructure:"websocket" yaml:"websocket"`
	Monitoring MonitoringConfig `mapstructure:"monitoring" yaml:"monitoring"`
	Tracing    TracingConfig    `mapstructure:"tracing" yaml:"tracing"`
}

// StorageConfig selects where the study collection is persisted.
type StorageConfig struct {
	Backend    string       `mapstructure:"backend" yaml:"backend"` // file|valkey|sqlite|memory
	Key        string       `mapstructure:"key" yaml:"key"`
	DataDir    string       `mapstructure:"data_dir" yaml:"data_dir"`
	SQLitePath string       `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Valkey     ValkeyConfig `mapstructure:"valkey" yaml:"valkey"`
}

type ValkeyConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// CacheConfig configures the built-graph cache. An empty Addr uses the
// in-memory fallback.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	TTL      int    `mapstructure:"ttl" yaml:"ttl"` // seconds
}

// CatalogConfig points at an optional YAML catalog; empty uses the built-in tables.
type CatalogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Watch bool   `mapstructure:"watch" yaml:"watch"`
}

type GraphConfig struct {
	Layout graph.Layout `mapstructure:"layout" yaml:"layout"`
}

type ImportConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" yaml:"max_bytes"`
	MaxRows  int   `mapstructure:"max_rows" yaml:"max_rows"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type WebSocketConfig struct {
	Enabled         bool `mapstructure:"enabled" yaml:"enabled"`
	MaxConnections  int  `mapstructure:"max_connections" yaml:"max_connections"`
	ReadBufferSize  int  `mapstructure:"read_buffer_size" yaml:"read_buffer_size"`
	WriteBufferSize int  `mapstructure:"write_buffer_size" yaml:"write_buffer_size"`
	PingInterval    int  `mapstructure:"ping_interval" yaml:"ping_interval"` // seconds
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	MetricsPath string `mapstructure:"metrics_path" yaml:"metrics_path"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint    string `mapstructure:"endpoint" yaml:"endpoint"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}
