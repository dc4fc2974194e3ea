package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// resolveOpenAPIPath finds api/openapi.yaml from the repo root or from a
// package directory under test. STUDYGRAPH_OPENAPI_PATH wins when readable.
func resolveOpenAPIPath() string {
	if p := os.Getenv("STUDYGRAPH_OPENAPI_PATH"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	candidates := []string{
		"api/openapi.yaml",
		filepath.FromSlash("../../api/openapi.yaml"),
		filepath.FromSlash("../../../api/openapi.yaml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "api/openapi.yaml"
}

// OpenAPIPath is the document served at /api/openapi.yaml.
func OpenAPIPath() string { return resolveOpenAPIPath() }

// GetOpenAPISpec serves the OpenAPI document as JSON with info.version set
// to the running build.
func GetOpenAPISpec(c *gin.Context) {
	data, err := os.ReadFile(resolveOpenAPIPath())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load openapi.yaml"})
		return
	}
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse openapi.yaml"})
		return
	}
	if info, ok := obj["info"].(map[string]any); ok {
		info["version"] = Version
	}
	c.JSON(http.StatusOK, obj)
}
