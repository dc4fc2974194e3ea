package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

type CatalogHandler struct {
	studies *services.StudyService
	logger  logger.Logger
}

func NewCatalogHandler(studies *services.StudyService, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{studies: studies, logger: logger}
}

// GetCatalog godoc
// @Summary Reference tables
// @Description Initiative types, verticals, responsibles, levels and products, plus verticals claimed by more than one product.
// @Tags catalog
// @Produce json
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	cat := h.studies.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"tables":    cat.Tables(),
		"conflicts": append([]catalog.VerticalConflict{}, cat.Conflicts()...),
	})
}

// GetFacets godoc
// @Summary Facet values
// @Description Values each filter facet can take, the number of active selections and technique suggestions for q.
// @Tags catalog
// @Produce json
// @Param q query string false "technique suggestion term"
// @Success 200 {object} services.Facets
// @Router /api/v1/facets [get]
func (h *CatalogHandler) GetFacets(c *gin.Context) {
	q := parseQuery(c)
	c.JSON(http.StatusOK, h.studies.Facets(q.Search, q.Filters))
}
