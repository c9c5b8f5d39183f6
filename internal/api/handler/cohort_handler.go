package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// CohortHandler serves cohorts and their lifecycle actions
type CohortHandler struct {
	cohortSvc service.CohortService
}

// NewCohortHandler creates a CohortHandler.
func NewCohortHandler(cohortSvc service.CohortService) *CohortHandler {
	return &CohortHandler{cohortSvc: cohortSvc}
}

// ListCohorts lists the cohorts of a program
// GET /api/v1/programs/:id/cohorts
func (h *CohortHandler) ListCohorts(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.cohortSvc.ListByProgram(c.Request.Context(), programID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateCohort creates a cohort under a program
// POST /api/v1/programs/:id/cohorts
func (h *CohortHandler) CreateCohort(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCohortRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cohort, err := h.cohortSvc.Create(c.Request.Context(), programID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, cohort)
}

// GetCohort returns one cohort
// GET /api/v1/cohorts/:id
func (h *CohortHandler) GetCohort(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cohort, err := h.cohortSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cohort)
}

// UpdateCohort updates a cohort
// PUT /api/v1/cohorts/:id
func (h *CohortHandler) UpdateCohort(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCohortRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cohort, err := h.cohortSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cohort)
}

// DeleteCohort deletes a cohort and its whole curriculum
// DELETE /api/v1/cohorts/:id
func (h *CohortHandler) DeleteCohort(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cohortSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ActivateCohort makes the cohort the single active one of its program
// POST /api/v1/cohorts/:id/activate
func (h *CohortHandler) ActivateCohort(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cohort, err := h.cohortSvc.Activate(c.Request.Context(), id, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cohort)
}

// InitializeCohort creates the academic years and blocks of an empty cohort
// POST /api/v1/cohorts/:id/initialize
func (h *CohortHandler) InitializeCohort(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	summary, err := h.cohortSvc.Initialize(c.Request.Context(), id, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, summary)
}
