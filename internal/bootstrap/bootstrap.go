// Package bootstrap assembles the study service from configuration. It is
// shared by the HTTP server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/config"
	"github.com/platformbuilds/studygraph/internal/repo"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/cache"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// Runtime is everything a process needs to serve studies.
type Runtime struct {
	Catalog *catalog.Catalog
	Store   repo.BlobStore
	Cache   cache.ValkeyCache
	Studies *services.StudyService
}

// Close releases the store and the cache.
func (r *Runtime) Close() error {
	var first error
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			first = err
		}
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LoadCatalog reads catalog.path when set, else returns the built-in tables.
func LoadCatalog(cfg *config.Config, log logger.Logger) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	log.Info("Catalog loaded", "path", cfg.Catalog.Path, "products", len(cat.Products()))
	return cat, nil
}

func OpenStore(cfg *config.Config) (repo.BlobStore, error) {
	store, err := repo.Open(repo.Options{
		Backend:        cfg.Storage.Backend,
		DataDir:        cfg.Storage.DataDir,
		SQLitePath:     cfg.Storage.SQLitePath,
		ValkeyAddr:     cfg.Storage.Valkey.Addr,
		ValkeyPassword: cfg.Storage.Valkey.Password,
		ValkeyDB:       cfg.Storage.Valkey.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	return store, nil
}

// OpenCache connects the graph cache. An unreachable valkey degrades to the
// in-memory cache instead of failing startup.
func OpenCache(cfg *config.Config, log logger.Logger) cache.ValkeyCache {
	ttl := time.Duration(cfg.Cache.TTL) * time.Second
	if !cfg.Cache.Enabled || cfg.Cache.Addr == "" {
		return cache.NewNoopValkeyCache(ttl, log)
	}
	c, err := cache.NewValkeySingle(cfg.Cache.Addr, cfg.Cache.DB, cfg.Cache.Password, ttl, log)
	if err != nil {
		log.Warn("Graph cache unreachable, using in-memory cache", "addr", cfg.Cache.Addr, "error", err)
		return cache.NewNoopValkeyCache(ttl, log)
	}
	log.Info("Graph cache connected", "addr", cfg.Cache.Addr)
	return c
}

// NewRuntime builds and initialises the study service. notifier may be nil.
func NewRuntime(ctx context.Context, cfg *config.Config, notifier services.Notifier, log logger.Logger) (*Runtime, error) {
	cat, err := LoadCatalog(cfg, log)
	if err != nil {
		return nil, err
	}
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Catalog: cat, Store: store, Cache: OpenCache(cfg, log)}
	rt.Studies = services.NewStudyService(
		repo.NewDefaultStudyRepo(store, cfg.Storage.Key, log),
		cat,
		services.StudyServiceConfig{
			Layout:        cfg.Graph.Layout,
			Cache:         rt.Cache,
			CacheTTL:      time.Duration(cfg.Cache.TTL) * time.Second,
			MaxImportRows: cfg.Import.MaxRows,
			Notifier:      notifier,
		},
		log,
	)

	if err := rt.Studies.Init(ctx); err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}
