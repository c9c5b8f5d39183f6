package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// AssessmentHandler serves assessments, their outcome coverage and rubrics
type AssessmentHandler struct {
	assessmentSvc service.AssessmentService
}

// NewAssessmentHandler creates a AssessmentHandler.
func NewAssessmentHandler(assessmentSvc service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// ListAssessments lists the assessments of a block in order
// GET /api/v1/blocks/:id/assessments
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.assessmentSvc.ListByBlock(c.Request.Context(), blockID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateAssessment adds an assessment to a block
// POST /api/v1/blocks/:id/assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAssessmentRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentSvc.Create(c.Request.Context(), blockID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, assessment)
}

// ReorderAssessments rewrites the assessment order of a block
// PUT /api/v1/blocks/:id/assessments/order
func (h *AssessmentHandler) ReorderAssessments(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.assessmentSvc.Reorder(c.Request.Context(), blockID, &req); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetAssessment returns one assessment
// GET /api/v1/assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	assessment, err := h.assessmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, assessment)
}

// UpdateAssessment updates an assessment
// PUT /api/v1/assessments/:id
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssessmentRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, assessment)
}

// DeleteAssessment deletes an assessment
// DELETE /api/v1/assessments/:id
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.assessmentSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListOutcomes lists the outcomes an assessment covers
// GET /api/v1/assessments/:id/outcomes
func (h *AssessmentHandler) ListOutcomes(c *gin.Context) {
	assessmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.assessmentSvc.ListOutcomes(c.Request.Context(), assessmentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// SetOutcomes replaces the outcome coverage of an assessment
// PUT /api/v1/assessments/:id/outcomes
func (h *AssessmentHandler) SetOutcomes(c *gin.Context) {
	assessmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SetAssessmentOutcomesRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.assessmentSvc.SetOutcomes(c.Request.Context(), assessmentID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ── criteria / rubric levels ──

// ListCriteria lists the criteria of an assessment with their levels
// GET /api/v1/assessments/:id/criteria
func (h *AssessmentHandler) ListCriteria(c *gin.Context) {
	assessmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.assessmentSvc.ListCriteria(c.Request.Context(), assessmentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateCriterion adds a criterion to an assessment
// POST /api/v1/assessments/:id/criteria
func (h *AssessmentHandler) CreateCriterion(c *gin.Context) {
	assessmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCriterionRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	criterion, err := h.assessmentSvc.CreateCriterion(c.Request.Context(), assessmentID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, criterion)
}

// ReorderCriteria rewrites the criterion order of an assessment
// PUT /api/v1/assessments/:id/criteria/order
func (h *AssessmentHandler) ReorderCriteria(c *gin.Context) {
	assessmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.assessmentSvc.ReorderCriteria(c.Request.Context(), assessmentID, &req); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdateCriterion updates a criterion
// PUT /api/v1/criteria/:id
func (h *AssessmentHandler) UpdateCriterion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCriterionRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	criterion, err := h.assessmentSvc.UpdateCriterion(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, criterion)
}

// DeleteCriterion deletes a criterion and its rubric levels
// DELETE /api/v1/criteria/:id
func (h *AssessmentHandler) DeleteCriterion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.assessmentSvc.DeleteCriterion(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListRubricLevels lists the rubric levels of a criterion
// GET /api/v1/criteria/:id/rubric-levels
func (h *AssessmentHandler) ListRubricLevels(c *gin.Context) {
	criterionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.assessmentSvc.ListRubricLevels(c.Request.Context(), criterionID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateRubricLevel adds a rubric level to a criterion
// POST /api/v1/criteria/:id/rubric-levels
func (h *AssessmentHandler) CreateRubricLevel(c *gin.Context) {
	criterionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateRubricLevelRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	level, err := h.assessmentSvc.CreateRubricLevel(c.Request.Context(), criterionID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, level)
}

// UpdateRubricLevel updates a rubric level
// PUT /api/v1/rubric-levels/:id
func (h *AssessmentHandler) UpdateRubricLevel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRubricLevelRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	level, err := h.assessmentSvc.UpdateRubricLevel(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, level)
}

// DeleteRubricLevel deletes a rubric level
// DELETE /api/v1/rubric-levels/:id
func (h *AssessmentHandler) DeleteRubricLevel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.assessmentSvc.DeleteRubricLevel(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
