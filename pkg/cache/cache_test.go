package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/studygraph/pkg/logger"
)

func TestNoopCache_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	c := NewNoopValkeyCache(time.Minute, logger.NewNop()).(*noopValkeyCache)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.CacheQueryResult(ctx, "h", map[string]int{"a": 1}, 0))
	b, err := c.GetCachedQueryResult(ctx, "h")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(b))

	now = now.Add(2 * time.Minute)
	_, err = c.GetCachedQueryResult(ctx, "h")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", "v", time.Hour))
	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.HealthCheck(ctx))
}

func TestValkeyCache_WithMiniredis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c := NewValkeyFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute, logger.NewNop())
	t.Cleanup(func() { _ = c.Close() })

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.CacheQueryResult(ctx, "abc", []byte("payload"), 0))
	assert.True(t, mr.Exists("query_cache:abc"))
	assert.Equal(t, time.Minute, mr.TTL("query_cache:abc"))

	b, err := c.GetCachedQueryResult(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(b))

	mr.FastForward(2 * time.Minute)
	_, err = c.GetCachedQueryResult(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.HealthCheck(ctx))
}
