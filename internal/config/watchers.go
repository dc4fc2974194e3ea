package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// CatalogWatcher reloads the catalog file on change and hands the new
// catalog to registered callbacks. A file that fails to parse is logged and
// the previous catalog stays in effect.
type CatalogWatcher struct {
	path     string
	logger   logger.Logger
	mu       sync.RWMutex
	current  *catalog.Catalog
	watchers []func(*catalog.Catalog)
	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewCatalogWatcher(path string, initial *catalog.Catalog, logger logger.Logger) *CatalogWatcher {
	return &CatalogWatcher{
		path:     path,
		logger:   logger,
		current:  initial,
		watchers: make([]func(*catalog.Catalog), 0),
		stopCh:   make(chan struct{}),
	}
}

// Start watches the catalog's directory until ctx is cancelled or Stop is
// called. The directory is watched rather than the file so editors that
// replace files by rename are still picked up.
func (w *CatalogWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch catalog dir: %w", err)
	}

	target := filepath.Clean(w.path)
	w.logger.Info("Catalog watcher started", "path", w.path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Info("Catalog file changed, reloading", "file", event.Name)
			if err := w.Reload(); err != nil {
				w.logger.Error("Failed to reload catalog", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Catalog watcher error", "error", err)

		case <-ctx.Done():
			w.logger.Info("Catalog watcher stopping")
			return nil

		case <-w.stopCh:
			w.logger.Info("Catalog watcher stopped")
			return nil
		}
	}
}

// Reload parses the file now and notifies callbacks on success.
func (w *CatalogWatcher) Reload() error {
	next, err := catalog.LoadFile(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.current = next
	watchers := make([]func(*catalog.Catalog), len(w.watchers))
	copy(watchers, w.watchers)
	w.mu.Unlock()

	for _, c := range next.Conflicts() {
		w.logger.Warn("Vertical mapped to more than one product",
			"vertical", c.Vertical, "previous", c.Previous, "winner", c.Winner)
	}
	w.logger.Info("Catalog reloaded", "products", len(next.Products()))

	for _, cb := range watchers {
		w.notify(cb, next)
	}
	return nil
}

// RegisterWatcher adds a callback for catalog changes
func (w *CatalogWatcher) RegisterWatcher(callback func(*catalog.Catalog)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watchers = append(w.watchers, callback)
}

// Catalog returns the most recently loaded catalog.
func (w *CatalogWatcher) Catalog() *catalog.Catalog {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *CatalogWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *CatalogWatcher) notify(cb func(*catalog.Catalog), c *catalog.Catalog) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Catalog watcher callback panic", "panic", r)
		}
	}()
	cb(c)
}
