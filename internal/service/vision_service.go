package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/validate"
)

var (
	ErrVisionNotFound    = pkgerrors.NotFound("vision not found")
	ErrVisionTypeExists  = pkgerrors.Constraint("uq_visions_cohort_type", "the cohort already has a vision of this type")
	ErrPrincipleNotFound = pkgerrors.NotFound("vision principle not found")
)

// VisionService manages the visions of a cohort and their principles.
type VisionService interface {
	Create(ctx context.Context, cohortID string, req *dto.CreateVisionRequest, callerID string) (*model.Vision, error)
	GetByID(ctx context.Context, id string) (*model.Vision, error)
	ListByCohort(ctx context.Context, cohortID string) ([]model.Vision, error)
	// Update stamps PublishedAt when the vision becomes approved.
	Update(ctx context.Context, id string, req *dto.UpdateVisionRequest, callerID string) (*model.Vision, error)
	Delete(ctx context.Context, id string) error

	CreatePrinciple(ctx context.Context, visionID string, req *dto.CreatePrincipleRequest, callerID string) (*model.VisionPrinciple, error)
	ListPrinciples(ctx context.Context, visionID string) ([]model.VisionPrinciple, error)
	UpdatePrinciple(ctx context.Context, id string, req *dto.UpdatePrincipleRequest, callerID string) (*model.VisionPrinciple, error)
	DeletePrinciple(ctx context.Context, id string) error
	ReorderPrinciples(ctx context.Context, visionID string, req *dto.ReorderRequest) error
}

type visionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewVisionService(repo *repository.Repository, logger *zap.Logger) VisionService {
	return &visionService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── visions ──────────────────────

func (s *visionService) Create(ctx context.Context, cohortID string, req *dto.CreateVisionRequest, callerID string) (*model.Vision, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return nil, storeErr(err, ErrCohortNotFound)
	}

	v := &model.Vision{
		CohortID: cohortID,
		Type:     model.VisionType(req.Type),
		Title:    req.Title,
		Content:  req.Content,
		Status:   model.StatusDraft,
	}
	if req.Status != "" {
		v.Status = model.ReviewStatus(req.Status)
	}
	if v.Status == model.StatusApproved {
		now := s.now().UTC()
		v.PublishedAt = &now
	}
	v.Stamp(callerID)

	if err := s.repo.Vision.Create(ctx, v); err != nil {
		return nil, logInternal(s.logger, "create vision failed", visionErr(err), zap.String("cohort_id", cohortID))
	}
	return v, nil
}

func (s *visionService) GetByID(ctx context.Context, id string) (*model.Vision, error) {
	v, err := s.repo.Vision.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get vision failed", storeErr(err, ErrVisionNotFound), zap.String("id", id))
	}
	principles, err := s.repo.Principle.ListByVision(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "list principles failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	v.Principles = principles
	return v, nil
}

func (s *visionService) ListByCohort(ctx context.Context, cohortID string) ([]model.Vision, error) {
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return nil, storeErr(err, ErrCohortNotFound)
	}
	list, err := s.repo.Vision.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "list visions failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *visionService) Update(ctx context.Context, id string, req *dto.UpdateVisionRequest, callerID string) (*model.Vision, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	v, err := s.repo.Vision.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrVisionNotFound)
	}
	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Content != nil {
		v.Content = *req.Content
	}
	if req.Status != nil {
		next := model.ReviewStatus(*req.Status)
		if next == model.StatusApproved && v.Status != model.StatusApproved {
			now := s.now().UTC()
			v.PublishedAt = &now
		}
		v.Status = next
	}
	v.Touch(callerID)

	if err := s.repo.Vision.Update(ctx, v); err != nil {
		return nil, logInternal(s.logger, "update vision failed", visionErr(err), zap.String("id", id))
	}
	return v, nil
}

func (s *visionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Vision.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete vision failed", storeErr(err, ErrVisionNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── principles ──────────────────────

func (s *visionService) CreatePrinciple(ctx context.Context, visionID string, req *dto.CreatePrincipleRequest, callerID string) (*model.VisionPrinciple, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Vision.GetByID(ctx, visionID); err != nil {
		return nil, storeErr(err, ErrVisionNotFound)
	}
	order, err := nextSortOrder(ctx, s.repo.Principle, visionID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	p := &model.VisionPrinciple{VisionID: visionID, Title: req.Title, Description: req.Description, SortOrder: order}
	p.Stamp(callerID)
	if err := s.repo.Principle.Create(ctx, p); err != nil {
		return nil, logInternal(s.logger, "create principle failed", pkgerrors.FromStore(err))
	}
	return p, nil
}

func (s *visionService) ListPrinciples(ctx context.Context, visionID string) ([]model.VisionPrinciple, error) {
	if _, err := s.repo.Vision.GetByID(ctx, visionID); err != nil {
		return nil, storeErr(err, ErrVisionNotFound)
	}
	list, err := s.repo.Principle.ListByVision(ctx, visionID)
	if err != nil {
		return nil, logInternal(s.logger, "list principles failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *visionService) UpdatePrinciple(ctx context.Context, id string, req *dto.UpdatePrincipleRequest, callerID string) (*model.VisionPrinciple, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.repo.Principle.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrPrincipleNotFound)
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	p.Touch(callerID)
	if err := s.repo.Principle.Update(ctx, p); err != nil {
		return nil, logInternal(s.logger, "update principle failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return p, nil
}

func (s *visionService) DeletePrinciple(ctx context.Context, id string) error {
	if err := s.repo.Principle.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete principle failed", storeErr(err, ErrPrincipleNotFound), zap.String("id", id))
	}
	return nil
}

func (s *visionService) ReorderPrinciples(ctx context.Context, visionID string, req *dto.ReorderRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if _, err := s.repo.Vision.GetByID(ctx, visionID); err != nil {
		return storeErr(err, ErrVisionNotFound)
	}
	err := reorderSiblings(ctx, s.repo, func(tx *repository.Repository) repository.Siblings { return tx.Principle }, visionID, req.IDs)
	return logInternal(s.logger, "reorder principles failed", err, zap.String("vision_id", visionID))
}

func visionErr(err error) error {
	err = pkgerrors.FromStore(err)
	if pkgerrors.IsConstraint(err, ErrVisionTypeExists.Constraint) {
		return ErrVisionTypeExists
	}
	return err
}
