package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

type GraphHandler struct {
	studies *services.StudyService
	logger  logger.Logger
}

func NewGraphHandler(studies *services.StudyService, logger logger.Logger) *GraphHandler {
	return &GraphHandler{studies: studies, logger: logger}
}

// ProductGraph godoc
// @Summary Tree of one product
// @Description Positioned product, vertical, subproduct and study nodes for the product. Accepts the same search and facet parameters as /studies.
// @Tags graph
// @Produce json
// @Param productId path string true "product id"
// @Success 200 {object} models.Graph
// @Failure 404 {object} map[string]string
// @Router /api/v1/graph/products/{productId} [get]
func (h *GraphHandler) ProductGraph(c *gin.Context) {
	g, err := h.studies.ScopedGraph(c.Request.Context(), c.Param("productId"), parseQuery(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// GlobalGraph godoc
// @Summary Cross-product tree
// @Description One band per product with matches.
// @Tags graph
// @Produce json
// @Success 200 {object} models.Graph
// @Router /api/v1/graph/global [get]
func (h *GraphHandler) GlobalGraph(c *gin.Context) {
	g, err := h.studies.GlobalGraph(c.Request.Context(), parseQuery(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, g)
}
