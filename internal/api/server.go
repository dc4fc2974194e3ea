package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/platformbuilds/studygraph/internal/api/handlers"
	"github.com/platformbuilds/studygraph/internal/api/middleware"
	"github.com/platformbuilds/studygraph/internal/api/websocket"
	"github.com/platformbuilds/studygraph/internal/config"
	"github.com/platformbuilds/studygraph/internal/monitoring"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/cache"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

type Server struct {
	config     *config.Config
	logger     logger.Logger
	cache      cache.ValkeyCache
	studies    *services.StudyService
	hub        *websocket.Hub
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer wires middleware and routes. hub may be nil when websockets are
// disabled.
func NewServer(
	cfg *config.Config,
	log logger.Logger,
	studies *services.StudyService,
	graphCache cache.ValkeyCache,
	hub *websocket.Hub,
) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config:  cfg,
		logger:  log,
		cache:   graphCache,
		studies: studies,
		hub:     hub,
		router:  gin.New(),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORSMiddleware(s.config.CORS))
	s.router.Use(middleware.RequestLogger(s.logger))
	if s.config.Monitoring.Enabled {
		s.router.Use(middleware.MetricsMiddleware())
	}
	s.router.Use(middleware.ErrorHandler(s.logger))

	// OpenAPI document and Swagger UI at /swagger/index.html
	s.router.StaticFile("/api/openapi.yaml", handlers.OpenAPIPath())
	s.router.GET("/api/openapi.json", handlers.GetOpenAPISpec)
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/api/openapi.yaml")))

	if s.config.Monitoring.Enabled {
		monitoring.SetupPrometheusMetrics(s.router, s.config.Monitoring.MetricsPath)
	}
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.studies, s.cache, s.logger)
	studyHandler := handlers.NewStudyHandler(s.studies, s.logger)
	importHandler := handlers.NewImportHandler(s.studies, s.config.Import.MaxBytes, s.logger)
	graphHandler := handlers.NewGraphHandler(s.studies, s.logger)
	catalogHandler := handlers.NewCatalogHandler(s.studies, s.logger)

	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)

	s.router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/swagger/index.html")
	})

	v1 := s.router.Group("/api/v1")

	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)

	v1.GET("/catalog", catalogHandler.GetCatalog)
	v1.GET("/facets", catalogHandler.GetFacets)

	v1.GET("/studies", studyHandler.ListStudies)
	v1.GET("/studies/draft", studyHandler.NewDraft)
	v1.GET("/studies/:id", studyHandler.GetStudy)
	v1.POST("/studies", studyHandler.CreateStudy)
	v1.PUT("/studies/:id", studyHandler.UpdateStudy)
	v1.POST("/studies/import", importHandler.ImportCSV)

	v1.GET("/ids/next", studyHandler.NextID)
	v1.GET("/quarters/current", studyHandler.CurrentQuarter)

	v1.GET("/graph/products/:productId", graphHandler.ProductGraph)
	v1.GET("/graph/global", graphHandler.GlobalGraph)

	if s.hub != nil {
		v1.GET("/ws/studies", s.hub.ServeWS)
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("studygraph API server starting", "port", s.config.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down studygraph gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("Failed to close graph cache", "error", err)
		}
	}
	return nil
}

// Handler returns the underlying Gin engine so tests (or embedders) can mount it.
func (s *Server) Handler() http.Handler {
	return s.router
}
