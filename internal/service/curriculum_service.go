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
	ErrAcademicYearNotFound = pkgerrors.NotFound("academic year not found")
	ErrBlockNotFound        = pkgerrors.NotFound("block not found")
)

const defaultBlockColor = "#3B82F6"

// CurriculumService manages academic years and blocks and aggregates
// their credits.
type CurriculumService interface {
	CreateYear(ctx context.Context, cohortID string, req *dto.CreateAcademicYearRequest, callerID string) (*model.AcademicYear, error)
	GetYear(ctx context.Context, id string) (*model.AcademicYear, error)
	ListYears(ctx context.Context, cohortID string) ([]model.AcademicYear, error)
	UpdateYear(ctx context.Context, id string, req *dto.UpdateAcademicYearRequest, callerID string) (*model.AcademicYear, error)
	DeleteYear(ctx context.Context, id string) error

	CreateBlock(ctx context.Context, yearID string, req *dto.CreateBlockRequest, callerID string) (*model.Block, error)
	GetBlock(ctx context.Context, id string) (*model.Block, error)
	ListBlocks(ctx context.Context, yearID string) ([]model.Block, error)
	UpdateBlock(ctx context.Context, id string, req *dto.UpdateBlockRequest, callerID string) (*model.Block, error)
	DeleteBlock(ctx context.Context, id string) error
	ReorderBlocks(ctx context.Context, yearID string, req *dto.ReorderRequest) error

	ListVisionRelations(ctx context.Context, blockID string) ([]model.BlockVisionRelation, error)
	// SetVisionRelations replaces the block's vision relations. Every vision
	// must belong to the block's cohort.
	SetVisionRelations(ctx context.Context, blockID string, req *dto.SetBlockVisionRelationsRequest) ([]model.BlockVisionRelation, error)

	// YearCredits is the sum of the credits of the year's blocks, 0 without blocks.
	YearCredits(ctx context.Context, yearID string) (float64, error)
	// CohortCredits is the sum of YearCredits over the cohort's years.
	CohortCredits(ctx context.Context, cohortID string) (float64, error)
}

type curriculumService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewCurriculumService(repo *repository.Repository, logger *zap.Logger) CurriculumService {
	return &curriculumService{repo: repo, logger: logger}
}

// ────────────────────── academic years ──────────────────────

func (s *curriculumService) CreateYear(ctx context.Context, cohortID string, req *dto.CreateAcademicYearRequest, callerID string) (*model.AcademicYear, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return nil, storeErr(err, ErrCohortNotFound)
	}

	y := &model.AcademicYear{
		CohortID:      cohortID,
		YearNumber:    req.YearNumber,
		Name:          req.Name,
		TargetCredits: DefaultTargetCredits,
		SortOrder:     req.YearNumber,
	}
	if req.TargetCredits != nil {
		y.TargetCredits = *req.TargetCredits
	}
	y.Stamp(callerID)

	if err := s.repo.AcademicYear.Create(ctx, y); err != nil {
		return nil, logInternal(s.logger, "create academic year failed", pkgerrors.FromStore(err), zap.String("cohort_id", cohortID))
	}
	return y, nil
}

func (s *curriculumService) GetYear(ctx context.Context, id string) (*model.AcademicYear, error) {
	y, err := s.repo.AcademicYear.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get academic year failed", storeErr(err, ErrAcademicYearNotFound), zap.String("id", id))
	}
	return y, nil
}

func (s *curriculumService) ListYears(ctx context.Context, cohortID string) ([]model.AcademicYear, error) {
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return nil, storeErr(err, ErrCohortNotFound)
	}
	list, err := s.repo.AcademicYear.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "list academic years failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *curriculumService) UpdateYear(ctx context.Context, id string, req *dto.UpdateAcademicYearRequest, callerID string) (*model.AcademicYear, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	y, err := s.repo.AcademicYear.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAcademicYearNotFound)
	}
	if req.Name != nil {
		y.Name = *req.Name
	}
	if req.TargetCredits != nil {
		y.TargetCredits = *req.TargetCredits
	}
	y.Touch(callerID)
	if err := s.repo.AcademicYear.Update(ctx, y); err != nil {
		return nil, logInternal(s.logger, "update academic year failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return y, nil
}

func (s *curriculumService) DeleteYear(ctx context.Context, id string) error {
	if err := s.repo.AcademicYear.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete academic year failed", storeErr(err, ErrAcademicYearNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── blocks ──────────────────────

func (s *curriculumService) CreateBlock(ctx context.Context, yearID string, req *dto.CreateBlockRequest, callerID string) (*model.Block, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.AcademicYear.GetByID(ctx, yearID); err != nil {
		return nil, storeErr(err, ErrAcademicYearNotFound)
	}
	order, err := nextSortOrder(ctx, s.repo.Block, yearID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	b := &model.Block{
		AcademicYearID:   yearID,
		Code:             req.Code,
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Type:             model.BlockEducational,
		Credits:          req.Credits,
		DurationWeeks:    10,
		Status:           model.StatusDraft,
		Color:            defaultBlockColor,
		SortOrder:        order,
	}
	if req.Type != "" {
		b.Type = model.BlockType(req.Type)
	}
	if req.DurationWeeks != nil {
		b.DurationWeeks = *req.DurationWeeks
	}
	if req.Status != "" {
		b.Status = model.ReviewStatus(req.Status)
	}
	if req.Color != "" {
		b.Color = req.Color
	}
	b.Stamp(callerID)

	if err := s.repo.Block.Create(ctx, b); err != nil {
		return nil, logInternal(s.logger, "create block failed", pkgerrors.FromStore(err), zap.String("academic_year_id", yearID))
	}
	return b, nil
}

func (s *curriculumService) GetBlock(ctx context.Context, id string) (*model.Block, error) {
	b, err := s.repo.Block.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get block failed", storeErr(err, ErrBlockNotFound), zap.String("id", id))
	}
	return b, nil
}

func (s *curriculumService) ListBlocks(ctx context.Context, yearID string) ([]model.Block, error) {
	if _, err := s.repo.AcademicYear.GetByID(ctx, yearID); err != nil {
		return nil, storeErr(err, ErrAcademicYearNotFound)
	}
	list, err := s.repo.Block.ListByYear(ctx, yearID)
	if err != nil {
		return nil, logInternal(s.logger, "list blocks failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *curriculumService) UpdateBlock(ctx context.Context, id string, req *dto.UpdateBlockRequest, callerID string) (*model.Block, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	b, err := s.repo.Block.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrBlockNotFound)
	}
	if req.Code != nil {
		b.Code = *req.Code
	}
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.ShortDescription != nil {
		b.ShortDescription = *req.ShortDescription
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Type != nil {
		b.Type = model.BlockType(*req.Type)
	}
	if req.Credits != nil {
		b.Credits = *req.Credits
	}
	if req.DurationWeeks != nil {
		b.DurationWeeks = *req.DurationWeeks
	}
	if req.Status != nil {
		b.Status = model.ReviewStatus(*req.Status)
	}
	if req.Color != nil {
		b.Color = *req.Color
	}
	b.Touch(callerID)
	if err := s.repo.Block.Update(ctx, b); err != nil {
		return nil, logInternal(s.logger, "update block failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return b, nil
}

func (s *curriculumService) DeleteBlock(ctx context.Context, id string) error {
	if err := s.repo.Block.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete block failed", storeErr(err, ErrBlockNotFound), zap.String("id", id))
	}
	return nil
}

func (s *curriculumService) ReorderBlocks(ctx context.Context, yearID string, req *dto.ReorderRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if _, err := s.repo.AcademicYear.GetByID(ctx, yearID); err != nil {
		return storeErr(err, ErrAcademicYearNotFound)
	}
	err := reorderSiblings(ctx, s.repo, func(tx *repository.Repository) repository.Siblings { return tx.Block }, yearID, req.IDs)
	return logInternal(s.logger, "reorder blocks failed", err, zap.String("academic_year_id", yearID))
}

// ────────────────────── vision relations ──────────────────────

func (s *curriculumService) ListVisionRelations(ctx context.Context, blockID string) ([]model.BlockVisionRelation, error) {
	if _, err := s.repo.Block.GetByID(ctx, blockID); err != nil {
		return nil, storeErr(err, ErrBlockNotFound)
	}
	rels, err := s.repo.Link.ListBlockVisionRelations(ctx, blockID)
	if err != nil {
		return nil, logInternal(s.logger, "list block vision relations failed", pkgerrors.FromStore(err))
	}
	return rels, nil
}

func (s *curriculumService) SetVisionRelations(ctx context.Context, blockID string, req *dto.SetBlockVisionRelationsRequest) ([]model.BlockVisionRelation, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.Relations))
	rels := make([]model.BlockVisionRelation, 0, len(req.Relations))
	for _, in := range req.Relations {
		ids = append(ids, in.VisionID)
		strength := model.StrengthModerate
		if in.Strength != "" {
			strength = model.RelationStrength(in.Strength)
		}
		rels = append(rels, model.BlockVisionRelation{
			BlockID:     blockID,
			VisionID:    in.VisionID,
			Strength:    strength,
			Description: in.Description,
		})
	}
	if dup, ok := firstDuplicate(ids); ok {
		return nil, pkgerrors.FieldError("relations", "vision "+dup+" is listed twice")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		_, cohortID, err := cohortOfBlock(ctx, tx, blockID)
		if err != nil {
			return err
		}
		if err := requireVisionsInCohort(ctx, tx, cohortID, ids); err != nil {
			return err
		}
		return pkgerrors.FromStore(tx.Link.ReplaceBlockVisionRelations(ctx, blockID, rels))
	})
	if err != nil {
		return nil, logInternal(s.logger, "set block vision relations failed", err, zap.String("block_id", blockID))
	}
	return rels, nil
}

// ────────────────────── credits ──────────────────────

func (s *curriculumService) YearCredits(ctx context.Context, yearID string) (float64, error) {
	if _, err := s.repo.AcademicYear.GetByID(ctx, yearID); err != nil {
		return 0, storeErr(err, ErrAcademicYearNotFound)
	}
	sum, err := s.repo.Block.SumCreditsByYear(ctx, yearID)
	if err != nil {
		return 0, logInternal(s.logger, "sum year credits failed", pkgerrors.FromStore(err), zap.String("academic_year_id", yearID))
	}
	return sum, nil
}

func (s *curriculumService) CohortCredits(ctx context.Context, cohortID string) (float64, error) {
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return 0, storeErr(err, ErrCohortNotFound)
	}
	sum, err := s.repo.Block.SumCreditsByCohort(ctx, cohortID)
	if err != nil {
		return 0, logInternal(s.logger, "sum cohort credits failed", pkgerrors.FromStore(err), zap.String("cohort_id", cohortID))
	}
	return sum, nil
}
