package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// ProgramHandler serves programs, their MBO/HBO configuration and the MBO qualification tree
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler creates a ProgramHandler.
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// ListPrograms lists the programs of an academy
// GET /api/v1/academies/:id/programs
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	academyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.programSvc.ListByAcademy(c.Request.Context(), academyID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateProgram creates a program under an academy
// POST /api/v1/academies/:id/programs
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	academyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateProgramRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	program, err := h.programSvc.Create(c.Request.Context(), academyID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, program)
}

// GetProgram returns a program with its education-type configuration
// GET /api/v1/programs/:id
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	program, err := h.programSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, program)
}

// UpdateProgram updates a program
// PUT /api/v1/programs/:id
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	program, err := h.programSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, program)
}

// DeleteProgram deletes a program
// DELETE /api/v1/programs/:id
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.programSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── configuration ──

// GetMBOConfig returns the MBO configuration of a program
// GET /api/v1/programs/:id/mbo-config
func (h *ProgramHandler) GetMBOConfig(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	cfg, err := h.programSvc.GetMBOConfig(c.Request.Context(), programID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cfg)
}

// UpsertMBOConfig creates or replaces the MBO configuration
// PUT /api/v1/programs/:id/mbo-config
func (h *ProgramHandler) UpsertMBOConfig(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpsertMBOConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cfg, err := h.programSvc.UpsertMBOConfig(c.Request.Context(), programID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cfg)
}

// GetHBOConfig returns the HBO configuration of a program
// GET /api/v1/programs/:id/hbo-config
func (h *ProgramHandler) GetHBOConfig(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	cfg, err := h.programSvc.GetHBOConfig(c.Request.Context(), programID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cfg)
}

// UpsertHBOConfig creates or replaces the HBO configuration
// PUT /api/v1/programs/:id/hbo-config
func (h *ProgramHandler) UpsertHBOConfig(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpsertHBOConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cfg, err := h.programSvc.UpsertHBOConfig(c.Request.Context(), programID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, cfg)
}

// ── kerntaken / werkprocessen / keuzedelen ──

// CreateKerntaak adds a kerntaak to the MBO configuration
// POST /api/v1/programs/:id/kerntaken
func (h *ProgramHandler) CreateKerntaak(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateKerntaakRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	kt, err := h.programSvc.CreateKerntaak(c.Request.Context(), programID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, kt)
}

// UpdateKerntaak updates a kerntaak
// PUT /api/v1/kerntaken/:id
func (h *ProgramHandler) UpdateKerntaak(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateKerntaakRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	kt, err := h.programSvc.UpdateKerntaak(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, kt)
}

// DeleteKerntaak deletes a kerntaak and its werkprocessen
// DELETE /api/v1/kerntaken/:id
func (h *ProgramHandler) DeleteKerntaak(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.programSvc.DeleteKerntaak(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// CreateWerkproces adds a werkproces to a kerntaak
// POST /api/v1/kerntaken/:id/werkprocessen
func (h *ProgramHandler) CreateWerkproces(c *gin.Context) {
	kerntaakID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateWerkprocesRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	wp, err := h.programSvc.CreateWerkproces(c.Request.Context(), kerntaakID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, wp)
}

// UpdateWerkproces updates a werkproces
// PUT /api/v1/werkprocessen/:id
func (h *ProgramHandler) UpdateWerkproces(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWerkprocesRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	wp, err := h.programSvc.UpdateWerkproces(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, wp)
}

// DeleteWerkproces deletes a werkproces
// DELETE /api/v1/werkprocessen/:id
func (h *ProgramHandler) DeleteWerkproces(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.programSvc.DeleteWerkproces(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// CreateKeuzedeel adds a keuzedeel to the MBO configuration
// POST /api/v1/programs/:id/keuzedelen
func (h *ProgramHandler) CreateKeuzedeel(c *gin.Context) {
	programID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateKeuzedeelRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	kd, err := h.programSvc.CreateKeuzedeel(c.Request.Context(), programID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, kd)
}

// UpdateKeuzedeel updates a keuzedeel
// PUT /api/v1/keuzedelen/:id
func (h *ProgramHandler) UpdateKeuzedeel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateKeuzedeelRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	kd, err := h.programSvc.UpdateKeuzedeel(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, kd)
}

// DeleteKeuzedeel deletes a keuzedeel
// DELETE /api/v1/keuzedelen/:id
func (h *ProgramHandler) DeleteKeuzedeel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.programSvc.DeleteKeuzedeel(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
