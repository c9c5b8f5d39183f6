package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// DashboardHandler serves the read-only cohort overviews
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// CreditOverview compares planned credits per year with the program norm
// GET /api/v1/cohorts/:id/credit-overview
func (h *DashboardHandler) CreditOverview(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	overview, err := h.dashboardSvc.CreditOverview(c.Request.Context(), cohortID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, overview)
}

// CoverageMatrix returns which blocks assess which learning outcomes
// GET /api/v1/cohorts/:id/coverage-matrix
func (h *DashboardHandler) CoverageMatrix(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	matrix, err := h.dashboardSvc.CoverageMatrix(c.Request.Context(), cohortID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, matrix)
}
