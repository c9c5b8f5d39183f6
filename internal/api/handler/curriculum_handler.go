package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// CurriculumHandler serves academic years, blocks and credit totals
type CurriculumHandler struct {
	curriculumSvc service.CurriculumService
}

// NewCurriculumHandler creates a CurriculumHandler.
func NewCurriculumHandler(curriculumSvc service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumSvc: curriculumSvc}
}

// ── academic years ──

// ListYears lists the academic years of a cohort
// GET /api/v1/cohorts/:id/academic-years
func (h *CurriculumHandler) ListYears(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.curriculumSvc.ListYears(c.Request.Context(), cohortID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateYear adds an academic year to a cohort
// POST /api/v1/cohorts/:id/academic-years
func (h *CurriculumHandler) CreateYear(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAcademicYearRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	year, err := h.curriculumSvc.CreateYear(c.Request.Context(), cohortID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, year)
}

// CohortCredits sums the block credits of a cohort
// GET /api/v1/cohorts/:id/credits
func (h *CurriculumHandler) CohortCredits(c *gin.Context) {
	cohortID, ok := pathID(c, "id")
	if !ok {
		return
	}

	credits, err := h.curriculumSvc.CohortCredits(c.Request.Context(), cohortID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"cohort_id": cohortID, "credits": credits})
}

// GetYear returns one academic year
// GET /api/v1/academic-years/:id
func (h *CurriculumHandler) GetYear(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	year, err := h.curriculumSvc.GetYear(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, year)
}

// UpdateYear updates an academic year
// PUT /api/v1/academic-years/:id
func (h *CurriculumHandler) UpdateYear(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAcademicYearRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	year, err := h.curriculumSvc.UpdateYear(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, year)
}

// DeleteYear deletes an academic year and its blocks
// DELETE /api/v1/academic-years/:id
func (h *CurriculumHandler) DeleteYear(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.curriculumSvc.DeleteYear(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// YearCredits sums the block credits of an academic year
// GET /api/v1/academic-years/:id/credits
func (h *CurriculumHandler) YearCredits(c *gin.Context) {
	academicYearID, ok := pathID(c, "id")
	if !ok {
		return
	}

	credits, err := h.curriculumSvc.YearCredits(c.Request.Context(), academicYearID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"academic_year_id": academicYearID, "credits": credits})
}

// ── blocks ──

// ListBlocks lists the blocks of an academic year in order
// GET /api/v1/academic-years/:id/blocks
func (h *CurriculumHandler) ListBlocks(c *gin.Context) {
	yearID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.curriculumSvc.ListBlocks(c.Request.Context(), yearID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateBlock appends a block to an academic year
// POST /api/v1/academic-years/:id/blocks
func (h *CurriculumHandler) CreateBlock(c *gin.Context) {
	yearID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateBlockRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	block, err := h.curriculumSvc.CreateBlock(c.Request.Context(), yearID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, block)
}

// ReorderBlocks rewrites the block order of an academic year
// PUT /api/v1/academic-years/:id/blocks/order
func (h *CurriculumHandler) ReorderBlocks(c *gin.Context) {
	yearID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.curriculumSvc.ReorderBlocks(c.Request.Context(), yearID, &req); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetBlock returns one block
// GET /api/v1/blocks/:id
func (h *CurriculumHandler) GetBlock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	block, err := h.curriculumSvc.GetBlock(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, block)
}

// UpdateBlock updates a block
// PUT /api/v1/blocks/:id
func (h *CurriculumHandler) UpdateBlock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBlockRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	block, err := h.curriculumSvc.UpdateBlock(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, block)
}

// DeleteBlock deletes a block
// DELETE /api/v1/blocks/:id
func (h *CurriculumHandler) DeleteBlock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.curriculumSvc.DeleteBlock(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListVisionRelations lists the vision relations of a block
// GET /api/v1/blocks/:id/vision-relations
func (h *CurriculumHandler) ListVisionRelations(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.curriculumSvc.ListVisionRelations(c.Request.Context(), blockID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// SetVisionRelations replaces the vision relations of a block
// PUT /api/v1/blocks/:id/vision-relations
func (h *CurriculumHandler) SetVisionRelations(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SetBlockVisionRelationsRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.curriculumSvc.SetVisionRelations(c.Request.Context(), blockID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}
