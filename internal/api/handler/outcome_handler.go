package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// OutcomeHandler serves learning outcomes and their vision links
type OutcomeHandler struct {
	outcomeSvc service.OutcomeService
}

// NewOutcomeHandler creates a OutcomeHandler.
func NewOutcomeHandler(outcomeSvc service.OutcomeService) *OutcomeHandler {
	return &OutcomeHandler{outcomeSvc: outcomeSvc}
}

// ListOutcomes lists the learning outcomes of a cohort in order
// GET /api/v1/cohorts/:id/outcomes
func (h *OutcomeHandler) ListOutcomes(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.outcomeSvc.ListByCohort(c.Request.Context(), cohortID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateOutcome creates a learning outcome
// POST /api/v1/cohorts/:id/outcomes
func (h *OutcomeHandler) CreateOutcome(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateOutcomeRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	outcome, err := h.outcomeSvc.Create(c.Request.Context(), cohortID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, outcome)
}

// ReorderOutcomes rewrites the outcome order of a cohort
// PUT /api/v1/cohorts/:id/outcomes/order
func (h *OutcomeHandler) ReorderOutcomes(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.outcomeSvc.Reorder(c.Request.Context(), cohortID, &req); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetOutcome returns one learning outcome
// GET /api/v1/outcomes/:id
func (h *OutcomeHandler) GetOutcome(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	outcome, err := h.outcomeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, outcome)
}

// UpdateOutcome updates a learning outcome
// PUT /api/v1/outcomes/:id
func (h *OutcomeHandler) UpdateOutcome(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOutcomeRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	outcome, err := h.outcomeSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, outcome)
}

// DeleteOutcome deletes a learning outcome
// DELETE /api/v1/outcomes/:id
func (h *OutcomeHandler) DeleteOutcome(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.outcomeSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── vision links ──

// ListVisionLinks lists the visions an outcome is linked to
// GET /api/v1/outcomes/:id/vision-links
func (h *OutcomeHandler) ListVisionLinks(c *gin.Context) {
	outcomeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.outcomeSvc.ListVisionLinks(c.Request.Context(), outcomeID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// SetVisionLinks replaces the vision links of an outcome
// PUT /api/v1/outcomes/:id/vision-links
func (h *OutcomeHandler) SetVisionLinks(c *gin.Context) {
	outcomeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SetOutcomeVisionLinksRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.outcomeSvc.SetVisionLinks(c.Request.Context(), outcomeID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}
