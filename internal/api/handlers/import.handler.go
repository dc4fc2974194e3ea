package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

type ImportHandler struct {
	studies        *services.StudyService
	maxUploadBytes int64
	logger         logger.Logger
}

func NewImportHandler(studies *services.StudyService, maxUploadBytes int64, logger logger.Logger) *ImportHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &ImportHandler{studies: studies, maxUploadBytes: maxUploadBytes, logger: logger}
}

// ImportCSV godoc
// @Summary Import studies from CSV
// @Description Multipart upload in field "file". A header missing a required column rejects the batch with 422.
// @Tags studies
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} services.ImportReport
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/studies/import [post]
func (h *ImportHandler) ImportCSV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form or file too large"})
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	defer file.Close()

	report, err := h.studies.Import(c.Request.Context(), file)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.Info("CSV imported", "file", header.Filename, "batch", report.BatchID, "imported", report.Imported)
	c.JSON(http.StatusOK, report)
}
