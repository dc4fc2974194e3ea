package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// ValkeyCache is the cache surface used for built query results.
type ValkeyCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	CacheQueryResult(ctx context.Context, queryHash string, result interface{}, ttl time.Duration) error
	GetCachedQueryResult(ctx context.Context, queryHash string) ([]byte, error)
	HealthCheck(ctx context.Context) error
	Close() error
}

const queryPrefix = "query_cache:"

func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(v)
	}
}
