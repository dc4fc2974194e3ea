package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/cache"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// Version is stamped at build time.
var Version = "dev"

type HealthHandler struct {
	studies *services.StudyService
	cache   cache.ValkeyCache
	logger  logger.Logger
}

func NewHealthHandler(studies *services.StudyService, c cache.ValkeyCache, logger logger.Logger) *HealthHandler {
	return &HealthHandler{studies: studies, cache: c, logger: logger}
}

// GET /health - Quick health check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "studygraph",
		"version":   Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GET /ready - store and cache reachability
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	if err := h.studies.Ready(ctx); err != nil {
		ready = false
		checks["store"] = err.Error()
		h.logger.Warn("Readiness: store unavailable", "error", err)
	} else {
		checks["store"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(ctx); err != nil {
			// The graph cache is optional; report it without failing readiness.
			checks["cache"] = err.Error()
		} else {
			checks["cache"] = "ok"
		}
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"checks":    checks,
		"version":   h.studies.Version(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
