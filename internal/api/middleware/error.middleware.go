package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/importer"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)

		resp := ErrorResponse{
			Error:   err.Error(),
			Code:    codeFor(status),
			Details: details(err),
		}

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDKey),
			"error", err.Error(),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", fields...)
		} else {
			log.Debug("Request rejected", fields...)
		}

		c.JSON(status, resp)
	}
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var mc *importer.MissingColumnsError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &mc), errors.Is(err, importer.ErrMissingColumns):
		return http.StatusUnprocessableEntity
	case errors.Is(err, importer.ErrTooManyRows):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, importer.ErrEmptyInput), errors.Is(err, models.ErrInvalidStudy):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrStudyNotFound), errors.Is(err, graph.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateID):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	case http.StatusUnprocessableEntity:
		return "MISSING_COLUMNS"
	default:
		return "INTERNAL_ERROR"
	}
}

func details(err error) interface{} {
	var mc *importer.MissingColumnsError
	if errors.As(err, &mc) {
		return gin.H{"required": mc.Required, "missing": mc.Missing}
	}
	return nil
}
