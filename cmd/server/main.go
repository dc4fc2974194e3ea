package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platformbuilds/studygraph/internal/api"
	"github.com/platformbuilds/studygraph/internal/api/handlers"
	"github.com/platformbuilds/studygraph/internal/api/websocket"
	"github.com/platformbuilds/studygraph/internal/bootstrap"
	"github.com/platformbuilds/studygraph/internal/config"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/internal/tracing"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.LogLevel)
	logger.Info("Starting studygraph", "version", handlers.Version, "environment", cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewTracerProvider(ctx, cfg.Tracing.ServiceName, handlers.Version, cfg.Tracing.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracing", "error", err)
		}
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = tp.Shutdown(shutdownCtx)
		}()
		logger.Info("Tracing enabled", "endpoint", cfg.Tracing.Endpoint)
	}

	var (
		hub      *websocket.Hub
		notifier services.Notifier
	)
	if cfg.WebSocket.Enabled {
		hub = websocket.NewHub(websocket.HubConfig{
			MaxConnections:  cfg.WebSocket.MaxConnections,
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			PingInterval:    time.Duration(cfg.WebSocket.PingInterval) * time.Second,
		}, logger)
		go hub.Run(ctx)
		notifier = hub
	}

	rt, err := bootstrap.NewRuntime(ctx, cfg, notifier, logger)
	if err != nil {
		logger.Fatal("Failed to initialize study service", "error", err)
	}
	defer rt.Store.Close()
	logger.Info("Studies loaded", "backend", cfg.Storage.Backend, "count", len(rt.Studies.List()))

	if cfg.Catalog.Watch {
		watcher := config.NewCatalogWatcher(cfg.Catalog.Path, rt.Catalog, logger)
		watcher.RegisterWatcher(rt.Studies.SetCatalog)
		go func() {
			if err := watcher.Start(ctx); err != nil {
				logger.Error("Catalog watcher stopped", "path", cfg.Catalog.Path, "error", err)
			}
		}()
		defer watcher.Stop()
	}

	// The server owns the cache from here and closes it on shutdown.
	apiServer := api.NewServer(cfg, logger, rt.Studies, rt.Cache, hub)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := apiServer.Start(ctx); err != nil {
		logger.Fatal("Server failed to start", "error", err)
	}

	logger.Info("studygraph shutdown complete")
}
