package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/studygraph/internal/config"
	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/importer"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", fmt.Errorf("%w: quarter failed quarter", models.ErrInvalidStudy), http.StatusBadRequest, "INVALID_REQUEST"},
		{"not found", services.ErrStudyNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown product", fmt.Errorf("%w: nope", graph.ErrUnknownProduct), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", services.ErrDuplicateID, http.StatusConflict, "CONFLICT"},
		{"too many rows", importer.ErrTooManyRows, http.StatusRequestEntityTooLarge, "TOO_LARGE"},
		{"backend", errors.New("redis: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler(logger.NewNop()))
			router.GET("/x", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Code)
			assert.Equal(t, tt.err.Error(), body.Error)
		})
	}
}

func TestErrorHandlerMissingColumnsDetails(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(logger.NewNop()))
	router.POST("/import", func(c *gin.Context) {
		_ = c.Error(&importer.MissingColumnsError{Required: importer.RequiredColumns, Missing: []importer.Column{importer.ColLevel}})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Details struct {
			Required []string `json:"required"`
			Missing  []string `json:"missing"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Details.Required, 8)
	assert.Equal(t, []string{"Nivel"}, body.Details.Missing)
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(logger.NewNop()))
	router.GET("/x", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://ui.example.com", "*.corp.io"}, MaxAge: 600}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://ui.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "https://ui.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("wildcard subdomain", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://app.corp.io")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "https://app.corp.io", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://evil.test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://ui.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
