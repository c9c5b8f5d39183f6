package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the curriculum workbook download
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCohort streams the coverage matrix and credit overview of a cohort as xlsx
// GET /api/v1/cohorts/:id/export
func (h *ExportHandler) ExportCohort(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCohort(c.Request.Context(), cohortID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
