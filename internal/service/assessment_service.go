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
	ErrAssessmentNotFound  = pkgerrors.NotFound("assessment not found")
	ErrCriterionNotFound   = pkgerrors.NotFound("assessment criterion not found")
	ErrRubricLevelNotFound = pkgerrors.NotFound("rubric level not found")
	ErrRubricLevelExists   = pkgerrors.Constraint("uq_rubric_levels_criterion_level", "the criterion already has this level")
)

// defaultAssessmentWeight is the weight of an assessment created without one.
const defaultAssessmentWeight = 100

// AssessmentService manages assessments, their outcome links, criteria and
// rubric levels.
type AssessmentService interface {
	Create(ctx context.Context, blockID string, req *dto.CreateAssessmentRequest, callerID string) (*model.Assessment, error)
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	ListByBlock(ctx context.Context, blockID string) ([]model.Assessment, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssessmentRequest, callerID string) (*model.Assessment, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, blockID string, req *dto.ReorderRequest) error
	ListOutcomes(ctx context.Context, assessmentID string) ([]model.AssessmentOutcome, error)
	SetOutcomes(ctx context.Context, assessmentID string, req *dto.SetAssessmentOutcomesRequest) ([]model.AssessmentOutcome, error)

	CreateCriterion(ctx context.Context, assessmentID string, req *dto.CreateCriterionRequest, callerID string) (*model.AssessmentCriterion, error)
	ListCriteria(ctx context.Context, assessmentID string) ([]model.AssessmentCriterion, error)
	UpdateCriterion(ctx context.Context, id string, req *dto.UpdateCriterionRequest, callerID string) (*model.AssessmentCriterion, error)
	DeleteCriterion(ctx context.Context, id string) error
	ReorderCriteria(ctx context.Context, assessmentID string, req *dto.ReorderRequest) error

	CreateRubricLevel(ctx context.Context, criterionID string, req *dto.CreateRubricLevelRequest, callerID string) (*model.RubricLevel, error)
	ListRubricLevels(ctx context.Context, criterionID string) ([]model.RubricLevel, error)
	UpdateRubricLevel(ctx context.Context, id string, req *dto.UpdateRubricLevelRequest, callerID string) (*model.RubricLevel, error)
	DeleteRubricLevel(ctx context.Context, id string) error
}

type assessmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAssessmentService(repo *repository.Repository, logger *zap.Logger) AssessmentService {
	return &assessmentService{repo: repo, logger: logger}
}

// ────────────────────── assessments ──────────────────────

func (s *assessmentService) Create(ctx context.Context, blockID string, req *dto.CreateAssessmentRequest, callerID string) (*model.Assessment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Block.GetByID(ctx, blockID); err != nil {
		return nil, storeErr(err, ErrBlockNotFound)
	}
	if err := s.requireUnitInBlock(ctx, blockID, req.TeachingUnitID); err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, s.repo.Assessment, blockID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	a := &model.Assessment{
		BlockID:         blockID,
		TeachingUnitID:  req.TeachingUnitID,
		Code:            req.Code,
		Title:           req.Title,
		Description:     req.Description,
		AssessmentType:  model.AssessmentSummative,
		AssessmentForm:  model.AssessmentForm(req.AssessmentForm),
		IsSummative:     true,
		Weight:          defaultAssessmentWeight,
		Credits:         req.Credits,
		MinimumGrade:    req.MinimumGrade,
		RetakeAllowed:   true,
		GradingModel:    model.GradingNumeric,
		DurationMinutes: req.DurationMinutes,
		SortOrder:       order,
	}
	if req.AssessmentType != "" {
		a.AssessmentType = model.AssessmentType(req.AssessmentType)
	}
	if req.IsSummative != nil {
		a.IsSummative = *req.IsSummative
	}
	if req.Weight != nil {
		a.Weight = *req.Weight
	}
	if req.RetakeAllowed != nil {
		a.RetakeAllowed = *req.RetakeAllowed
	}
	if req.GradingModel != "" {
		a.GradingModel = model.GradingModel(req.GradingModel)
	}
	a.Stamp(callerID)
	if err := s.repo.Assessment.Create(ctx, a); err != nil {
		return nil, logInternal(s.logger, "create assessment failed", pkgerrors.FromStore(err), zap.String("block_id", blockID))
	}
	return a, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	a, err := s.repo.Assessment.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get assessment failed", storeErr(err, ErrAssessmentNotFound), zap.String("id", id))
	}
	return a, nil
}

func (s *assessmentService) ListByBlock(ctx context.Context, blockID string) ([]model.Assessment, error) {
	if _, err := s.repo.Block.GetByID(ctx, blockID); err != nil {
		return nil, storeErr(err, ErrBlockNotFound)
	}
	list, err := s.repo.Assessment.ListByBlock(ctx, blockID)
	if err != nil {
		return nil, logInternal(s.logger, "list assessments failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *assessmentService) Update(ctx context.Context, id string, req *dto.UpdateAssessmentRequest, callerID string) (*model.Assessment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	a, err := s.repo.Assessment.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAssessmentNotFound)
	}
	if req.TeachingUnitID != nil {
		if err := s.requireUnitInBlock(ctx, a.BlockID, req.TeachingUnitID); err != nil {
			return nil, err
		}
		a.TeachingUnitID = req.TeachingUnitID
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
	if req.AssessmentType != nil {
		a.AssessmentType = model.AssessmentType(*req.AssessmentType)
	}
	if req.AssessmentForm != nil {
		a.AssessmentForm = model.AssessmentForm(*req.AssessmentForm)
	}
	if req.IsSummative != nil {
		a.IsSummative = *req.IsSummative
	}
	if req.Weight != nil {
		a.Weight = *req.Weight
	}
	if req.Credits != nil {
		a.Credits = *req.Credits
	}
	if req.MinimumGrade != nil {
		a.MinimumGrade = req.MinimumGrade
	}
	if req.RetakeAllowed != nil {
		a.RetakeAllowed = *req.RetakeAllowed
	}
	if req.GradingModel != nil {
		a.GradingModel = model.GradingModel(*req.GradingModel)
	}
	if req.DurationMinutes != nil {
		a.DurationMinutes = req.DurationMinutes
	}
	a.Touch(callerID)
	if err := s.repo.Assessment.Update(ctx, a); err != nil {
		return nil, logInternal(s.logger, "update assessment failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return a, nil
}

func (s *assessmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Assessment.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete assessment failed", storeErr(err, ErrAssessmentNotFound), zap.String("id", id))
	}
	return nil
}

func (s *assessmentService) Reorder(ctx context.Context, blockID string, req *dto.ReorderRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if _, err := s.repo.Block.GetByID(ctx, blockID); err != nil {
		return storeErr(err, ErrBlockNotFound)
	}
	err := reorderSiblings(ctx, s.repo, func(tx *repository.Repository) repository.Siblings { return tx.Assessment }, blockID, req.IDs)
	return logInternal(s.logger, "reorder assessments failed", err, zap.String("block_id", blockID))
}

func (s *assessmentService) ListOutcomes(ctx context.Context, assessmentID string) ([]model.AssessmentOutcome, error) {
	if _, err := s.repo.Assessment.GetByID(ctx, assessmentID); err != nil {
		return nil, storeErr(err, ErrAssessmentNotFound)
	}
	links, err := s.repo.Link.ListAssessmentOutcomes(ctx, assessmentID)
	if err != nil {
		return nil, logInternal(s.logger, "list assessment outcomes failed", pkgerrors.FromStore(err))
	}
	return links, nil
}

// SetOutcomes replaces the outcomes an assessment measures. The coverage
// matrix is derived from these links.
func (s *assessmentService) SetOutcomes(ctx context.Context, assessmentID string, req *dto.SetAssessmentOutcomesRequest) ([]model.AssessmentOutcome, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.Outcomes))
	links := make([]model.AssessmentOutcome, 0, len(req.Outcomes))
	for _, in := range req.Outcomes {
		ids = append(ids, in.OutcomeID)
		links = append(links, model.AssessmentOutcome{AssessmentID: assessmentID, OutcomeID: in.OutcomeID, Weight: in.Weight})
	}
	if dup, ok := firstDuplicate(ids); ok {
		return nil, pkgerrors.FieldError("outcomes", "outcome "+dup+" is listed twice")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := tx.Assessment.GetByID(ctx, assessmentID)
		if err != nil {
			return storeErr(err, ErrAssessmentNotFound)
		}
		_, cohortID, err := cohortOfBlock(ctx, tx, a.BlockID)
		if err != nil {
			return err
		}
		if err := requireOutcomesInCohort(ctx, tx, cohortID, ids); err != nil {
			return err
		}
		return pkgerrors.FromStore(tx.Link.ReplaceAssessmentOutcomes(ctx, assessmentID, links))
	})
	if err != nil {
		return nil, logInternal(s.logger, "set assessment outcomes failed", err, zap.String("assessment_id", assessmentID))
	}
	return links, nil
}

// ────────────────────── criteria ──────────────────────

func (s *assessmentService) CreateCriterion(ctx context.Context, assessmentID string, req *dto.CreateCriterionRequest, callerID string) (*model.AssessmentCriterion, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	a, err := s.repo.Assessment.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, storeErr(err, ErrAssessmentNotFound)
	}
	if err := s.requireCriterionOutcome(ctx, a.BlockID, req.OutcomeID); err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, s.repo.Criterion, assessmentID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	c := &model.AssessmentCriterion{
		AssessmentID: assessmentID,
		OutcomeID:    req.OutcomeID,
		Name:         req.Name,
		Description:  req.Description,
		Weight:       req.Weight,
		SortOrder:    order,
	}
	c.Stamp(callerID)
	if err := s.repo.Criterion.Create(ctx, c); err != nil {
		return nil, logInternal(s.logger, "create criterion failed", pkgerrors.FromStore(err), zap.String("assessment_id", assessmentID))
	}
	return c, nil
}

func (s *assessmentService) ListCriteria(ctx context.Context, assessmentID string) ([]model.AssessmentCriterion, error) {
	if _, err := s.repo.Assessment.GetByID(ctx, assessmentID); err != nil {
		return nil, storeErr(err, ErrAssessmentNotFound)
	}
	list, err := s.repo.Criterion.ListByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, logInternal(s.logger, "list criteria failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *assessmentService) UpdateCriterion(ctx context.Context, id string, req *dto.UpdateCriterionRequest, callerID string) (*model.AssessmentCriterion, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	c, err := s.repo.Criterion.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrCriterionNotFound)
	}
	if req.OutcomeID != nil {
		a, err := s.repo.Assessment.GetByID(ctx, c.AssessmentID)
		if err != nil {
			return nil, storeErr(err, ErrAssessmentNotFound)
		}
		if err := s.requireCriterionOutcome(ctx, a.BlockID, req.OutcomeID); err != nil {
			return nil, err
		}
		c.OutcomeID = req.OutcomeID
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Weight != nil {
		c.Weight = *req.Weight
	}
	c.Touch(callerID)
	if err := s.repo.Criterion.Update(ctx, c); err != nil {
		return nil, logInternal(s.logger, "update criterion failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return c, nil
}

func (s *assessmentService) DeleteCriterion(ctx context.Context, id string) error {
	if err := s.repo.Criterion.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete criterion failed", storeErr(err, ErrCriterionNotFound), zap.String("id", id))
	}
	return nil
}

func (s *assessmentService) ReorderCriteria(ctx context.Context, assessmentID string, req *dto.ReorderRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if _, err := s.repo.Assessment.GetByID(ctx, assessmentID); err != nil {
		return storeErr(err, ErrAssessmentNotFound)
	}
	err := reorderSiblings(ctx, s.repo, func(tx *repository.Repository) repository.Siblings { return tx.Criterion }, assessmentID, req.IDs)
	return logInternal(s.logger, "reorder criteria failed", err, zap.String("assessment_id", assessmentID))
}

// ────────────────────── rubric levels ──────────────────────

func (s *assessmentService) CreateRubricLevel(ctx context.Context, criterionID string, req *dto.CreateRubricLevelRequest, callerID string) (*model.RubricLevel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Criterion.GetByID(ctx, criterionID); err != nil {
		return nil, storeErr(err, ErrCriterionNotFound)
	}

	l := &model.RubricLevel{
		CriterionID: criterionID,
		LevelNumber: req.LevelNumber,
		Label:       req.Label,
		Description: req.Description,
		Points:      req.Points,
	}
	l.Stamp(callerID)
	if err := s.repo.RubricLevel.Create(ctx, l); err != nil {
		return nil, logInternal(s.logger, "create rubric level failed", rubricLevelErr(err), zap.String("criterion_id", criterionID))
	}
	return l, nil
}

func (s *assessmentService) ListRubricLevels(ctx context.Context, criterionID string) ([]model.RubricLevel, error) {
	if _, err := s.repo.Criterion.GetByID(ctx, criterionID); err != nil {
		return nil, storeErr(err, ErrCriterionNotFound)
	}
	list, err := s.repo.RubricLevel.ListByCriterion(ctx, criterionID)
	if err != nil {
		return nil, logInternal(s.logger, "list rubric levels failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *assessmentService) UpdateRubricLevel(ctx context.Context, id string, req *dto.UpdateRubricLevelRequest, callerID string) (*model.RubricLevel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	l, err := s.repo.RubricLevel.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrRubricLevelNotFound)
	}
	if req.LevelNumber != nil {
		l.LevelNumber = *req.LevelNumber
	}
	if req.Label != nil {
		l.Label = *req.Label
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Points != nil {
		l.Points = *req.Points
	}
	l.Touch(callerID)
	if err := s.repo.RubricLevel.Update(ctx, l); err != nil {
		return nil, logInternal(s.logger, "update rubric level failed", rubricLevelErr(err), zap.String("id", id))
	}
	return l, nil
}

func (s *assessmentService) DeleteRubricLevel(ctx context.Context, id string) error {
	if err := s.repo.RubricLevel.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete rubric level failed", storeErr(err, ErrRubricLevelNotFound), zap.String("id", id))
	}
	return nil
}

// ── helpers ──

// requireUnitInBlock checks that an optional teaching unit belongs to the block.
func (s *assessmentService) requireUnitInBlock(ctx context.Context, blockID string, unitID *string) error {
	if unitID == nil {
		return nil
	}
	u, err := s.repo.TeachingUnit.GetByID(ctx, *unitID)
	if err != nil {
		return storeErr(err, ErrTeachingUnitNotFound)
	}
	if u.BlockID != blockID {
		return ErrTeachingUnitNotFound
	}
	return nil
}

// requireCriterionOutcome checks that an optional outcome lives in the
// cohort of the block.
func (s *assessmentService) requireCriterionOutcome(ctx context.Context, blockID string, outcomeID *string) error {
	if outcomeID == nil {
		return nil
	}
	_, cohortID, err := cohortOfBlock(ctx, s.repo, blockID)
	if err != nil {
		return err
	}
	return requireOutcomesInCohort(ctx, s.repo, cohortID, []string{*outcomeID})
}

func rubricLevelErr(err error) error {
	err = pkgerrors.FromStore(err)
	if pkgerrors.IsConstraint(err, ErrRubricLevelExists.Constraint) {
		return ErrRubricLevelExists
	}
	return err
}
