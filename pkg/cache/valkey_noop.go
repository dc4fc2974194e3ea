package cache

import (
	"context"
	"sync"
	"time"

	"github.com/platformbuilds/studygraph/internal/monitoring"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// noopValkeyCache is a process-local fallback used when no Valkey address is
// configured or the server is unreachable. Entries honour their TTL.
type noopValkeyCache struct {
	m      map[string]entry
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	logger logger.Logger
}

type entry struct {
	value   []byte
	expires time.Time
}

func NewNoopValkeyCache(defaultTTL time.Duration, log logger.Logger) ValkeyCache {
	log.Warn("Valkey cache unavailable; using in-memory fallback (noop)")
	return &noopValkeyCache{m: make(map[string]entry), ttl: defaultTTL, now: time.Now, logger: log}
}

func (n *noopValkeyCache) Get(_ context.Context, key string) ([]byte, error) {
	n.mu.RLock()
	e, ok := n.m[key]
	n.mu.RUnlock()
	if !ok || (!e.expires.IsZero() && !n.now().Before(e.expires)) {
		monitoring.RecordCacheOperation("get", "miss")
		return nil, ErrCacheMiss
	}
	monitoring.RecordCacheOperation("get", "hit")
	return e.value, nil
}

func (n *noopValkeyCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := encode(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = n.ttl
	}
	e := entry{value: b}
	if ttl > 0 {
		e.expires = n.now().Add(ttl)
	}
	n.mu.Lock()
	n.m[key] = e
	n.mu.Unlock()
	monitoring.RecordCacheOperation("set", "success")
	return nil
}

func (n *noopValkeyCache) Delete(_ context.Context, key string) error {
	n.mu.Lock()
	delete(n.m, key)
	n.mu.Unlock()
	return nil
}

func (n *noopValkeyCache) CacheQueryResult(ctx context.Context, queryHash string, result interface{}, ttl time.Duration) error {
	return n.Set(ctx, queryPrefix+queryHash, result, ttl)
}

func (n *noopValkeyCache) GetCachedQueryResult(ctx context.Context, queryHash string) ([]byte, error) {
	return n.Get(ctx, queryPrefix+queryHash)
}

func (n *noopValkeyCache) HealthCheck(context.Context) error { return nil }

func (n *noopValkeyCache) Close() error { return nil }
