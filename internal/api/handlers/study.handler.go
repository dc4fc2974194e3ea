package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/quarter"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

type StudyHandler struct {
	studies *services.StudyService
	logger  logger.Logger
}

func NewStudyHandler(studies *services.StudyService, logger logger.Logger) *StudyHandler {
	return &StudyHandler{studies: studies, logger: logger}
}

// ListStudies godoc
// @Summary Search studies
// @Description Free-text search combined with facet filters. grouped=true returns the capped cross-product listing.
// @Tags studies
// @Produce json
// @Param q query string false "substring search"
// @Param type query []string false "initiative type labels"
// @Param grouped query bool false "group by product"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/studies [get]
func (h *StudyHandler) ListStudies(c *gin.Context) {
	q := parseQuery(c)
	if c.Query("grouped") == "true" {
		c.JSON(http.StatusOK, h.studies.GlobalResults(q))
		return
	}
	studies := h.studies.Search(q)
	c.JSON(http.StatusOK, gin.H{
		"studies": studies,
		"total":   len(studies),
		"version": h.studies.Version(),
	})
}

// GetStudy godoc
// @Summary Study details
// @Description Returns the study with its parent and children inside the optional product scope.
// @Tags studies
// @Produce json
// @Param id path string true "study id"
// @Param productId query string false "product scope"
// @Success 200 {object} services.Details
// @Failure 404 {object} map[string]string
// @Router /api/v1/studies/{id} [get]
func (h *StudyHandler) GetStudy(c *gin.Context) {
	d, err := h.studies.Details(c.Param("id"), c.Query("productId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// NewDraft godoc
// @Summary Pre-filled draft
// @Tags studies
// @Produce json
// @Param initiativeTypeCode query string false "type code, default A_0.001"
// @Param verticalCode query string false "vertical code, default CRO"
// @Success 200 {object} models.Study
// @Router /api/v1/studies/draft [get]
func (h *StudyHandler) NewDraft(c *gin.Context) {
	draft, err := h.studies.NewDraft(c.Query("initiativeTypeCode"), c.Query("verticalCode"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// CreateStudy godoc
// @Summary Create a study
// @Description An empty id is allocated. The study is prepended to the collection.
// @Tags studies
// @Accept json
// @Produce json
// @Success 201 {object} services.Saved
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/studies [post]
func (h *StudyHandler) CreateStudy(c *gin.Context) {
	var study models.Study
	if err := c.ShouldBindJSON(&study); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid study body: " + err.Error()})
		return
	}
	saved, err := h.studies.Create(c.Request.Context(), study)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateStudy godoc
// @Summary Replace a study
// @Tags studies
// @Accept json
// @Produce json
// @Param id path string true "study id"
// @Success 200 {object} services.Saved
// @Router /api/v1/studies/{id} [put]
func (h *StudyHandler) UpdateStudy(c *gin.Context) {
	var study models.Study
	if err := c.ShouldBindJSON(&study); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid study body: " + err.Error()})
		return
	}
	saved, err := h.studies.Update(c.Request.Context(), c.Param("id"), study)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// NextID godoc
// @Summary Preview the next id for a type
// @Tags ids
// @Produce json
// @Param initiativeTypeCode query string false "type code"
// @Router /api/v1/ids/next [get]
func (h *StudyHandler) NextID(c *gin.Context) {
	typeCode := c.Query("initiativeTypeCode")
	if typeCode != "" {
		if _, ok := h.studies.Catalog().TypeByCode(typeCode); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown initiativeTypeCode " + typeCode})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"id": h.studies.NextID(typeCode)})
}

// CurrentQuarter godoc
// @Summary Current quarter token
// @Tags ids
// @Produce json
// @Router /api/v1/quarters/current [get]
func (h *StudyHandler) CurrentQuarter(c *gin.Context) {
	token := quarter.Current()
	year, _ := quarter.Year(token)
	c.JSON(http.StatusOK, gin.H{"quarter": token, "year": year})
}
