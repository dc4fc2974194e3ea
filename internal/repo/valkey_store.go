package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ValkeyStore keeps values in a Valkey/Redis server.
type ValkeyStore struct {
	client *redis.Client
}

func NewValkeyStore(addr, password string, db int) (*ValkeyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to valkey at %s: %w", addr, err)
	}
	return &ValkeyStore{client: client}, nil
}

// NewValkeyStoreFromClient wraps an existing client.
func NewValkeyStoreFromClient(client *redis.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func (v *ValkeyStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := v.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return raw, nil
}

func (v *ValkeyStore) Put(ctx context.Context, key string, value []byte) error {
	if err := v.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

func (v *ValkeyStore) Close() error {
	return v.client.Close()
}
