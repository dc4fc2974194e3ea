package config

import (
	"fmt"
	"net"
	"strconv"
)

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, config.LogLevel) {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	validEnvironments := []string{"development", "staging", "production", "test"}
	if !contains(validEnvironments, config.Environment) {
		return fmt.Errorf("invalid environment: %s", config.Environment)
	}

	validBackends := []string{"file", "valkey", "sqlite", "memory"}
	if !contains(validBackends, config.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s", config.Storage.Backend)
	}
	if config.Storage.Key == "" {
		return fmt.Errorf("storage key is required")
	}
	if config.Storage.Backend == "valkey" {
		if err := ValidateRedisNode(config.Storage.Valkey.Addr); err != nil {
			return fmt.Errorf("storage.valkey.addr: %w", err)
		}
	}

	if config.Cache.Enabled {
		if config.Cache.TTL < 1 {
			return fmt.Errorf("cache TTL must be at least 1 second")
		}
		if config.Cache.Addr != "" {
			if err := ValidateRedisNode(config.Cache.Addr); err != nil {
				return fmt.Errorf("cache.addr: %w", err)
			}
		}
	}

	l := config.Graph.Layout
	for name, val := range map[string]float64{
		"vertical_gap":   l.VerticalGap,
		"subproduct_gap": l.SubproductGap,
		"depth_step":     l.DepthStep,
		"row_step":       l.RowStep,
		"band_gap":       l.BandGap,
	} {
		if val <= 0 {
			return fmt.Errorf("graph.layout.%s must be positive", name)
		}
	}

	if config.Import.MaxBytes <= 0 || config.Import.MaxRows <= 0 {
		return fmt.Errorf("import limits must be positive")
	}

	if config.Catalog.Watch && config.Catalog.Path == "" {
		return fmt.Errorf("catalog.watch requires catalog.path")
	}

	if config.Tracing.Enabled && config.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing endpoint is required when tracing is enabled")
	}

	return nil
}

// ValidateRedisNode validates a host:port address.
func ValidateRedisNode(node string) error {
	if node == "" {
		return fmt.Errorf("address cannot be empty")
	}
	host, port, err := net.SplitHostPort(node)
	if err != nil {
		return fmt.Errorf("address must be in format host:port: %w", err)
	}
	if host == "" {
		return fmt.Errorf("address must include host")
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid port: %s", port)
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
