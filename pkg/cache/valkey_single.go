package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/platformbuilds/studygraph/internal/monitoring"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// valkeySingleImpl implements ValkeyCache against a single-node Valkey/Redis instance.
type valkeySingleImpl struct {
	client *redis.Client
	logger logger.Logger
	ttl    time.Duration
}

func NewValkeySingle(addr string, db int, password string, defaultTTL time.Duration, log logger.Logger) (ValkeyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Valkey single-node: %w", err)
	}

	return NewValkeyFromClient(client, defaultTTL, log), nil
}

// NewValkeyFromClient wraps an existing client; used by tests against miniredis.
func NewValkeyFromClient(client *redis.Client, defaultTTL time.Duration, log logger.Logger) ValkeyCache {
	return &valkeySingleImpl{client: client, logger: log, ttl: defaultTTL}
}

func (v *valkeySingleImpl) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := v.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		monitoring.RecordCacheOperation("get", "miss")
		return nil, ErrCacheMiss
	}
	if err != nil {
		monitoring.RecordCacheOperation("get", "error")
		return nil, err
	}
	monitoring.RecordCacheOperation("get", "hit")
	return b, nil
}

func (v *valkeySingleImpl) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := encode(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = v.ttl
	}
	if err := v.client.Set(ctx, key, b, ttl).Err(); err != nil {
		monitoring.RecordCacheOperation("set", "error")
		return err
	}
	monitoring.RecordCacheOperation("set", "success")
	return nil
}

func (v *valkeySingleImpl) Delete(ctx context.Context, key string) error {
	return v.client.Del(ctx, key).Err()
}

func (v *valkeySingleImpl) CacheQueryResult(ctx context.Context, queryHash string, result interface{}, ttl time.Duration) error {
	return v.Set(ctx, queryPrefix+queryHash, result, ttl)
}

func (v *valkeySingleImpl) GetCachedQueryResult(ctx context.Context, queryHash string) ([]byte, error) {
	return v.Get(ctx, queryPrefix+queryHash)
}

func (v *valkeySingleImpl) HealthCheck(ctx context.Context) error {
	return v.client.Ping(ctx).Err()
}

func (v *valkeySingleImpl) Close() error {
	return v.client.Close()
}
