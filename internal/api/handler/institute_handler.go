package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// InstituteHandler serves institutes and their academies
type InstituteHandler struct {
	instituteSvc service.InstituteService
}

// NewInstituteHandler creates a InstituteHandler.
func NewInstituteHandler(instituteSvc service.InstituteService) *InstituteHandler {
	return &InstituteHandler{instituteSvc: instituteSvc}
}

// ListInstitutes lists every institute
// GET /api/v1/institutes
func (h *InstituteHandler) ListInstitutes(c *gin.Context) {
	list, err := h.instituteSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateInstitute creates an institute
// POST /api/v1/institutes
func (h *InstituteHandler) CreateInstitute(c *gin.Context) {
	var req dto.CreateInstituteRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	inst, err := h.instituteSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, inst)
}

// GetInstitute returns one institute
// GET /api/v1/institutes/:id
func (h *InstituteHandler) GetInstitute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	inst, err := h.instituteSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, inst)
}

// UpdateInstitute updates an institute
// PUT /api/v1/institutes/:id
func (h *InstituteHandler) UpdateInstitute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateInstituteRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	inst, err := h.instituteSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, inst)
}

// DeleteInstitute deletes an institute and everything below it
// DELETE /api/v1/institutes/:id
func (h *InstituteHandler) DeleteInstitute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.instituteSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── academies ──

// ListAcademies lists the academies of an institute
// GET /api/v1/institutes/:id/academies
func (h *InstituteHandler) ListAcademies(c *gin.Context) {
	instituteID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.instituteSvc.ListAcademies(c.Request.Context(), instituteID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateAcademy creates an academy under an institute
// POST /api/v1/institutes/:id/academies
func (h *InstituteHandler) CreateAcademy(c *gin.Context) {
	instituteID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAcademyRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	academy, err := h.instituteSvc.CreateAcademy(c.Request.Context(), instituteID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, academy)
}

// GetAcademy returns one academy
// GET /api/v1/academies/:id
func (h *InstituteHandler) GetAcademy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	academy, err := h.instituteSvc.GetAcademy(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, academy)
}

// UpdateAcademy updates an academy
// PUT /api/v1/academies/:id
func (h *InstituteHandler) UpdateAcademy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAcademyRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	academy, err := h.instituteSvc.UpdateAcademy(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, academy)
}

// DeleteAcademy deletes an academy
// DELETE /api/v1/academies/:id
func (h *InstituteHandler) DeleteAcademy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.instituteSvc.DeleteAcademy(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
