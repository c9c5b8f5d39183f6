package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// TeachingUnitHandler serves teaching units with their week planning, activities and assignments
type TeachingUnitHandler struct {
	unitSvc service.TeachingUnitService
}

// NewTeachingUnitHandler creates a TeachingUnitHandler.
func NewTeachingUnitHandler(unitSvc service.TeachingUnitService) *TeachingUnitHandler {
	return &TeachingUnitHandler{unitSvc: unitSvc}
}

// ListUnits lists the teaching units of a block in order
// GET /api/v1/blocks/:id/teaching-units
func (h *TeachingUnitHandler) ListUnits(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.unitSvc.ListByBlock(c.Request.Context(), blockID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateUnit appends a teaching unit to a block
// POST /api/v1/blocks/:id/teaching-units
func (h *TeachingUnitHandler) CreateUnit(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateTeachingUnitRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	unit, err := h.unitSvc.Create(c.Request.Context(), blockID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, unit)
}

// ReorderUnits rewrites the teaching unit order of a block
// PUT /api/v1/blocks/:id/teaching-units/order
func (h *TeachingUnitHandler) ReorderUnits(c *gin.Context) {
	blockID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.unitSvc.Reorder(c.Request.Context(), blockID, &req); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetUnit returns one teaching unit
// GET /api/v1/teaching-units/:id
func (h *TeachingUnitHandler) GetUnit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	unit, err := h.unitSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, unit)
}

// UpdateUnit updates a teaching unit
// PUT /api/v1/teaching-units/:id
func (h *TeachingUnitHandler) UpdateUnit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTeachingUnitRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	unit, err := h.unitSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, unit)
}

// DeleteUnit deletes a teaching unit
// DELETE /api/v1/teaching-units/:id
func (h *TeachingUnitHandler) DeleteUnit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.unitSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── week planning ──

// ListWeeks lists the planned weeks of a teaching unit
// GET /api/v1/teaching-units/:id/weeks
func (h *TeachingUnitHandler) ListWeeks(c *gin.Context) {
	unitID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.unitSvc.ListWeeks(c.Request.Context(), unitID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateWeek plans a week for a teaching unit
// POST /api/v1/teaching-units/:id/weeks
func (h *TeachingUnitHandler) CreateWeek(c *gin.Context) {
	unitID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateWeekPlanningRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	week, err := h.unitSvc.CreateWeek(c.Request.Context(), unitID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, week)
}

// UpdateWeek updates a planned week
// PUT /api/v1/weeks/:id
func (h *TeachingUnitHandler) UpdateWeek(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWeekPlanningRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	week, err := h.unitSvc.UpdateWeek(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, week)
}

// DeleteWeek deletes a planned week
// DELETE /api/v1/weeks/:id
func (h *TeachingUnitHandler) DeleteWeek(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.unitSvc.DeleteWeek(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListActivities lists the learning activities of a week
// GET /api/v1/weeks/:id/activities
func (h *TeachingUnitHandler) ListActivities(c *gin.Context) {
	weekID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.unitSvc.ListActivities(c.Request.Context(), weekID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateActivity adds a learning activity to a week
// POST /api/v1/weeks/:id/activities
func (h *TeachingUnitHandler) CreateActivity(c *gin.Context) {
	weekID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateLearningActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	activity, err := h.unitSvc.CreateActivity(c.Request.Context(), weekID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, activity)
}

// UpdateActivity updates a learning activity
// PUT /api/v1/activities/:id
func (h *TeachingUnitHandler) UpdateActivity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLearningActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	activity, err := h.unitSvc.UpdateActivity(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, activity)
}

// DeleteActivity deletes a learning activity
// DELETE /api/v1/activities/:id
func (h *TeachingUnitHandler) DeleteActivity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.unitSvc.DeleteActivity(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── assignments ──

// ListAssignments lists the assignments of a teaching unit
// GET /api/v1/teaching-units/:id/assignments
func (h *TeachingUnitHandler) ListAssignments(c *gin.Context) {
	unitID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.unitSvc.ListAssignments(c.Request.Context(), unitID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateAssignment adds an assignment to a teaching unit
// POST /api/v1/teaching-units/:id/assignments
func (h *TeachingUnitHandler) CreateAssignment(c *gin.Context) {
	unitID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignment, err := h.unitSvc.CreateAssignment(c.Request.Context(), unitID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, assignment)
}

// GetAssignment returns one assignment
// GET /api/v1/assignments/:id
func (h *TeachingUnitHandler) GetAssignment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.unitSvc.GetAssignment(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, assignment)
}

// UpdateAssignment updates an assignment
// PUT /api/v1/assignments/:id
func (h *TeachingUnitHandler) UpdateAssignment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignment, err := h.unitSvc.UpdateAssignment(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, assignment)
}

// DeleteAssignment deletes an assignment
// DELETE /api/v1/assignments/:id
func (h *TeachingUnitHandler) DeleteAssignment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.unitSvc.DeleteAssignment(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListAssignmentOutcomes lists the outcomes an assignment contributes to
// GET /api/v1/assignments/:id/outcomes
func (h *TeachingUnitHandler) ListAssignmentOutcomes(c *gin.Context) {
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.unitSvc.ListAssignmentOutcomes(c.Request.Context(), assignmentID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// SetAssignmentOutcomes replaces the outcome links of an assignment
// PUT /api/v1/assignments/:id/outcomes
func (h *TeachingUnitHandler) SetAssignmentOutcomes(c *gin.Context) {
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SetAssignmentOutcomesRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.unitSvc.SetAssignmentOutcomes(c.Request.Context(), assignmentID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}
