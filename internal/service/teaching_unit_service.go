package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/validate"
)

var (
	ErrTeachingUnitNotFound = pkgerrors.NotFound("teaching unit not found")
	ErrWeekPlanningNotFound = pkgerrors.NotFound("week planning not found")
	ErrWeekNumberExists     = pkgerrors.Constraint("uq_week_plannings_unit_week", "the teaching unit already plans this week")
	ErrActivityNotFound     = pkgerrors.NotFound("learning activity not found")
	ErrAssignmentNotFound   = pkgerrors.NotFound("assignment not found")
)

// TeachingUnitService manages teaching units with their week plannings,
// learning activities and assignments.
type TeachingUnitService interface {
	Create(ctx context.Context, blockID string, req *dto.CreateTeachingUnitRequest, callerID string) (*model.TeachingUnit, error)
	GetByID(ctx context.Context, id string) (*model.TeachingUnit, error)
	ListByBlock(ctx context.Context, blockID string) ([]model.TeachingUnit, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeachingUnitRequest, callerID string) (*model.TeachingUnit, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, blockID string, req *dto.ReorderRequest) error

	CreateWeek(ctx context.Context, unitID string, req *dto.CreateWeekPlanningRequest, callerID string) (*model.WeekPlanning, error)
	ListWeeks(ctx context.Context, unitID string) ([]model.WeekPlanning, error)
	UpdateWeek(ctx context.Context, id string, req *dto.UpdateWeekPlanningRequest, callerID string) (*model.WeekPlanning, error)
	DeleteWeek(ctx context.Context, id string) error

	CreateActivity(ctx context.Context, weekID string, req *dto.CreateLearningActivityRequest, callerID string) (*model.LearningActivity, error)
	ListActivities(ctx context.Context, weekID string) ([]model.LearningActivity, error)
	UpdateActivity(ctx context.Context, id string, req *dto.UpdateLearningActivityRequest, callerID string) (*model.LearningActivity, error)
	DeleteActivity(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, unitID string, req *dto.CreateAssignmentRequest, callerID string) (*model.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	ListAssignments(ctx context.Context, unitID string) ([]model.Assignment, error)
	UpdateAssignment(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*model.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
	ListAssignmentOutcomes(ctx context.Context, assignmentID string) ([]model.AssignmentOutcome, error)
	// SetAssignmentOutcomes replaces the outcomes the assignment contributes
	// to. Every outcome must belong to the assignment's cohort.
	SetAssignmentOutcomes(ctx context.Context, assignmentID string, req *dto.SetAssignmentOutcomesRequest) ([]model.AssignmentOutcome, error)
}

type teachingUnitService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewTeachingUnitService(repo *repository.Repository, logger *zap.Logger) TeachingUnitService {
	return &teachingUnitService{repo: repo, logger: logger}
}

// ────────────────────── teaching units ──────────────────────

func (s *teachingUnitService) Create(ctx context.Context, blockID string, req *dto.CreateTeachingUnitRequest, callerID string) (*model.TeachingUnit, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Block.GetByID(ctx, blockID); err != nil {
		return nil, storeErr(err, ErrBlockNotFound)
	}
	order, err := nextSortOrder(ctx, s.repo.TeachingUnit, blockID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	u := &model.TeachingUnit{
		BlockID:        blockID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Credits:        req.Credits,
		ContactHours:   req.ContactHours,
		SelfStudyHours: req.SelfStudyHours,
		SortOrder:      order,
	}
	u.Stamp(callerID)
	if err := s.repo.TeachingUnit.Create(ctx, u); err != nil {
		return nil, logInternal(s.logger, "create teaching unit failed", pkgerrors.FromStore(err), zap.String("block_id", blockID))
	}
	return u, nil
}

func (s *teachingUnitService) GetByID(ctx context.Context, id string) (*model.TeachingUnit, error) {
	u, err := s.repo.TeachingUnit.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get teaching unit failed", storeErr(err, ErrTeachingUnitNotFound), zap.String("id", id))
	}
	return u, nil
}

func (s *teachingUnitService) ListByBlock(ctx context.Context, blockID string) ([]model.TeachingUnit, error) {
	if _, err := s.repo.Block.GetByID(ctx, blockID); err != nil {
		return nil, storeErr(err, ErrBlockNotFound)
	}
	list, err := s.repo.TeachingUnit.ListByBlock(ctx, blockID)
	if err != nil {
		return nil, logInternal(s.logger, "list teaching units failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *teachingUnitService) Update(ctx context.Context, id string, req *dto.UpdateTeachingUnitRequest, callerID string) (*model.TeachingUnit, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	u, err := s.repo.TeachingUnit.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrTeachingUnitNotFound)
	}
	if req.Code != nil {
		u.Code = *req.Code
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Description != nil {
		u.Description = *req.Description
	}
	if req.Credits != nil {
		u.Credits = *req.Credits
	}
	if req.ContactHours != nil {
		u.ContactHours = *req.ContactHours
	}
	if req.SelfStudyHours != nil {
		u.SelfStudyHours = *req.SelfStudyHours
	}
	u.Touch(callerID)
	if err := s.repo.TeachingUnit.Update(ctx, u); err != nil {
		return nil, logInternal(s.logger, "update teaching unit failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return u, nil
}

func (s *teachingUnitService) Delete(ctx context.Context, id string) error {
	if err := s.repo.TeachingUnit.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete teaching unit failed", storeErr(err, ErrTeachingUnitNotFound), zap.String("id", id))
	}
	return nil
}

func (s *teachingUnitService) Reorder(ctx context.Context, blockID string, req *dto.ReorderRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if _, err := s.repo.Block.GetByID(ctx, blockID); err != nil {
		return storeErr(err, ErrBlockNotFound)
	}
	err := reorderSiblings(ctx, s.repo, func(tx *repository.Repository) repository.Siblings { return tx.TeachingUnit }, blockID, req.IDs)
	return logInternal(s.logger, "reorder teaching units failed", err, zap.String("block_id", blockID))
}

// ────────────────────── week plannings ──────────────────────

func (s *teachingUnitService) CreateWeek(ctx context.Context, unitID string, req *dto.CreateWeekPlanningRequest, callerID string) (*model.WeekPlanning, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.TeachingUnit.GetByID(ctx, unitID); err != nil {
		return nil, storeErr(err, ErrTeachingUnitNotFound)
	}

	w := &model.WeekPlanning{
		TeachingUnitID: unitID,
		WeekNumber:     req.WeekNumber,
		Theme:          req.Theme,
		LearningGoals:  req.LearningGoals,
	}
	w.Stamp(callerID)
	if err := s.repo.WeekPlanning.Create(ctx, w); err != nil {
		return nil, logInternal(s.logger, "create week planning failed", weekErr(err), zap.String("teaching_unit_id", unitID))
	}
	return w, nil
}

func (s *teachingUnitService) ListWeeks(ctx context.Context, unitID string) ([]model.WeekPlanning, error) {
	if _, err := s.repo.TeachingUnit.GetByID(ctx, unitID); err != nil {
		return nil, storeErr(err, ErrTeachingUnitNotFound)
	}
	list, err := s.repo.WeekPlanning.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, logInternal(s.logger, "list week plannings failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *teachingUnitService) UpdateWeek(ctx context.Context, id string, req *dto.UpdateWeekPlanningRequest, callerID string) (*model.WeekPlanning, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	w, err := s.repo.WeekPlanning.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrWeekPlanningNotFound)
	}
	if req.WeekNumber != nil {
		w.WeekNumber = *req.WeekNumber
	}
	if req.Theme != nil {
		w.Theme = *req.Theme
	}
	if req.LearningGoals != nil {
		w.LearningGoals = *req.LearningGoals
	}
	w.Touch(callerID)
	if err := s.repo.WeekPlanning.Update(ctx, w); err != nil {
		return nil, logInternal(s.logger, "update week planning failed", weekErr(err), zap.String("id", id))
	}
	return w, nil
}

// DeleteWeek removes the week and its activities; assignments planned in
// the week keep existing without a week.
func (s *teachingUnitService) DeleteWeek(ctx context.Context, id string) error {
	if err := s.repo.WeekPlanning.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete week planning failed", storeErr(err, ErrWeekPlanningNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── learning activities ──────────────────────

func (s *teachingUnitService) CreateActivity(ctx context.Context, weekID string, req *dto.CreateLearningActivityRequest, callerID string) (*model.LearningActivity, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.WeekPlanning.GetByID(ctx, weekID); err != nil {
		return nil, storeErr(err, ErrWeekPlanningNotFound)
	}
	order, err := nextSortOrder(ctx, s.repo.Activity, weekID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	a := &model.LearningActivity{
		WeekPlanningID:  weekID,
		Name:            req.Name,
		Description:     req.Description,
		ActivityType:    model.ActivityType(req.ActivityType),
		DurationMinutes: req.DurationMinutes,
		SortOrder:       order,
	}
	a.Stamp(callerID)
	if err := s.repo.Activity.Create(ctx, a); err != nil {
		return nil, logInternal(s.logger, "create learning activity failed", pkgerrors.FromStore(err), zap.String("week_planning_id", weekID))
	}
	return a, nil
}

func (s *teachingUnitService) ListActivities(ctx context.Context, weekID string) ([]model.LearningActivity, error) {
	if _, err := s.repo.WeekPlanning.GetByID(ctx, weekID); err != nil {
		return nil, storeErr(err, ErrWeekPlanningNotFound)
	}
	list, err := s.repo.Activity.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, logInternal(s.logger, "list learning activities failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *teachingUnitService) UpdateActivity(ctx context.Context, id string, req *dto.UpdateLearningActivityRequest, callerID string) (*model.LearningActivity, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	a, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrActivityNotFound)
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.ActivityType != nil {
		a.ActivityType = model.ActivityType(*req.ActivityType)
	}
	if req.DurationMinutes != nil {
		a.DurationMinutes = *req.DurationMinutes
	}
	a.Touch(callerID)
	if err := s.repo.Activity.Update(ctx, a); err != nil {
		return nil, logInternal(s.logger, "update learning activity failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return a, nil
}

func (s *teachingUnitService) DeleteActivity(ctx context.Context, id string) error {
	if err := s.repo.Activity.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete learning activity failed", storeErr(err, ErrActivityNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── assignments ──────────────────────

func (s *teachingUnitService) CreateAssignment(ctx context.Context, unitID string, req *dto.CreateAssignmentRequest, callerID string) (*model.Assignment, error) {
	if err := validate.Merge(validate.Struct(req), groupSizeErrors(req.MinGroupSize, req.MaxGroupSize)); err != nil {
		return nil, err
	}
	if _, err := s.repo.TeachingUnit.GetByID(ctx, unitID); err != nil {
		return nil, storeErr(err, ErrTeachingUnitNotFound)
	}
	if err := s.requireWeekInUnit(ctx, unitID, req.WeekPlanningID); err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, s.repo.Assignment, unitID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	a := &model.Assignment{
		TeachingUnitID: unitID,
		WeekPlanningID: req.WeekPlanningID,
		Code:           req.Code,
		Title:          req.Title,
		Description:    req.Description,
		AssignmentType: model.AssignmentType(req.AssignmentType),
		WorkForm:       model.WorkIndividual,
		MinGroupSize:   req.MinGroupSize,
		MaxGroupSize:   req.MaxGroupSize,
		EstimatedHours: req.EstimatedHours,
		DueWeek:        req.DueWeek,
		SortOrder:      order,
	}
	if req.WorkForm != "" {
		a.WorkForm = model.WorkForm(req.WorkForm)
	}
	a.Stamp(callerID)
	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		return nil, logInternal(s.logger, "create assignment failed", pkgerrors.FromStore(err), zap.String("teaching_unit_id", unitID))
	}
	return a, nil
}

func (s *teachingUnitService) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get assignment failed", storeErr(err, ErrAssignmentNotFound), zap.String("id", id))
	}
	return a, nil
}

func (s *teachingUnitService) ListAssignments(ctx context.Context, unitID string) ([]model.Assignment, error) {
	if _, err := s.repo.TeachingUnit.GetByID(ctx, unitID); err != nil {
		return nil, storeErr(err, ErrTeachingUnitNotFound)
	}
	list, err := s.repo.Assignment.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, logInternal(s.logger, "list assignments failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *teachingUnitService) UpdateAssignment(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*model.Assignment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAssignmentNotFound)
	}
	if req.WeekPlanningID != nil {
		if err := s.requireWeekInUnit(ctx, a.TeachingUnitID, req.WeekPlanningID); err != nil {
			return nil, err
		}
		a.WeekPlanningID = req.WeekPlanningID
	}
	if req.Code != nil {
		a.Code = *req.Code
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.AssignmentType != nil {
		a.AssignmentType = model.AssignmentType(*req.AssignmentType)
	}
	if req.WorkForm != nil {
		a.WorkForm = model.WorkForm(*req.WorkForm)
	}
	if req.MinGroupSize != nil {
		a.MinGroupSize = req.MinGroupSize
	}
	if req.MaxGroupSize != nil {
		a.MaxGroupSize = req.MaxGroupSize
	}
	if req.EstimatedHours != nil {
		a.EstimatedHours = *req.EstimatedHours
	}
	if req.DueWeek != nil {
		a.DueWeek = req.DueWeek
	}
	if err := validate.Merge(nil, groupSizeErrors(a.MinGroupSize, a.MaxGroupSize)); err != nil {
		return nil, err
	}
	a.Touch(callerID)
	if err := s.repo.Assignment.Update(ctx, a); err != nil {
		return nil, logInternal(s.logger, "update assignment failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return a, nil
}

func (s *teachingUnitService) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete assignment failed", storeErr(err, ErrAssignmentNotFound), zap.String("id", id))
	}
	return nil
}

func (s *teachingUnitService) ListAssignmentOutcomes(ctx context.Context, assignmentID string) ([]model.AssignmentOutcome, error) {
	if _, err := s.repo.Assignment.GetByID(ctx, assignmentID); err != nil {
		return nil, storeErr(err, ErrAssignmentNotFound)
	}
	links, err := s.repo.Link.ListAssignmentOutcomes(ctx, assignmentID)
	if err != nil {
		return nil, logInternal(s.logger, "list assignment outcomes failed", pkgerrors.FromStore(err))
	}
	return links, nil
}

func (s *teachingUnitService) SetAssignmentOutcomes(ctx context.Context, assignmentID string, req *dto.SetAssignmentOutcomesRequest) ([]model.AssignmentOutcome, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.Outcomes))
	links := make([]model.AssignmentOutcome, 0, len(req.Outcomes))
	for _, in := range req.Outcomes {
		ids = append(ids, in.OutcomeID)
		links = append(links, model.AssignmentOutcome{AssignmentID: assignmentID, OutcomeID: in.OutcomeID, Contribution: in.Contribution})
	}
	if dup, ok := firstDuplicate(ids); ok {
		return nil, pkgerrors.FieldError("outcomes", "outcome "+dup+" is listed twice")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := tx.Assignment.GetByID(ctx, assignmentID)
		if err != nil {
			return storeErr(err, ErrAssignmentNotFound)
		}
		_, cohortID, err := cohortOfUnit(ctx, tx, a.TeachingUnitID)
		if err != nil {
			return err
		}
		if err := requireOutcomesInCohort(ctx, tx, cohortID, ids); err != nil {
			return err
		}
		return pkgerrors.FromStore(tx.Link.ReplaceAssignmentOutcomes(ctx, assignmentID, links))
	})
	if err != nil {
		return nil, logInternal(s.logger, "set assignment outcomes failed", err, zap.String("assignment_id", assignmentID))
	}
	return links, nil
}

// ── helpers ──

// requireWeekInUnit checks that an optional week belongs to the unit.
func (s *teachingUnitService) requireWeekInUnit(ctx context.Context, unitID string, weekID *string) error {
	if weekID == nil {
		return nil
	}
	w, err := s.repo.WeekPlanning.GetByID(ctx, *weekID)
	if err != nil {
		return storeErr(err, ErrWeekPlanningNotFound)
	}
	if w.TeachingUnitID != unitID {
		return ErrWeekPlanningNotFound
	}
	return nil
}

func groupSizeErrors(minSize, maxSize *int) map[string]string {
	if minSize != nil && maxSize != nil && *minSize > *maxSize {
		return map[string]string{"max_group_size": "must be greater than or equal to min_group_size"}
	}
	return nil
}

func weekErr(err error) error {
	err = pkgerrors.FromStore(err)
	if pkgerrors.IsConstraint(err, ErrWeekNumberExists.Constraint) {
		return ErrWeekNumberExists
	}
	return err
}
