package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// VisionHandler serves visions and their guiding principles
type VisionHandler struct {
	visionSvc service.VisionService
}

// NewVisionHandler creates a VisionHandler.
func NewVisionHandler(visionSvc service.VisionService) *VisionHandler {
	return &VisionHandler{visionSvc: visionSvc}
}

// ListVisions lists the visions of a cohort
// GET /api/v1/cohorts/:id/visions
func (h *VisionHandler) ListVisions(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.visionSvc.ListByCohort(c.Request.Context(), cohortID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateVision creates a vision for a cohort
// POST /api/v1/cohorts/:id/visions
func (h *VisionHandler) CreateVision(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateVisionRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	vision, err := h.visionSvc.Create(c.Request.Context(), cohortID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, vision)
}

// GetVision returns a vision with its principles
// GET /api/v1/visions/:id
func (h *VisionHandler) GetVision(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	vision, err := h.visionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, vision)
}

// UpdateVision updates a vision
// PUT /api/v1/visions/:id
func (h *VisionHandler) UpdateVision(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateVisionRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	vision, err := h.visionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, vision)
}

// DeleteVision deletes a vision
// DELETE /api/v1/visions/:id
func (h *VisionHandler) DeleteVision(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.visionSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── principles ──

// ListPrinciples lists the principles of a vision in order
// GET /api/v1/visions/:id/principles
func (h *VisionHandler) ListPrinciples(c *gin.Context) {
	visionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.visionSvc.ListPrinciples(c.Request.Context(), visionID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreatePrinciple appends a principle to a vision
// POST /api/v1/visions/:id/principles
func (h *VisionHandler) CreatePrinciple(c *gin.Context) {
	visionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreatePrincipleRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	principle, err := h.visionSvc.CreatePrinciple(c.Request.Context(), visionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, principle)
}

// ReorderPrinciples rewrites the principle order of a vision
// PUT /api/v1/visions/:id/principles/order
func (h *VisionHandler) ReorderPrinciples(c *gin.Context) {
	visionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.visionSvc.ReorderPrinciples(c.Request.Context(), visionID, &req); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdatePrinciple updates a principle
// PUT /api/v1/principles/:id
func (h *VisionHandler) UpdatePrinciple(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePrincipleRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	principle, err := h.visionSvc.UpdatePrinciple(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, principle)
}

// DeletePrinciple deletes a principle
// DELETE /api/v1/principles/:id
func (h *VisionHandler) DeletePrinciple(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.visionSvc.DeletePrinciple(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
