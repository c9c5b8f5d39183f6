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

var ErrOutcomeNotFound = pkgerrors.NotFound("learning outcome not found")

// OutcomeService manages the learning outcomes of a cohort.
type OutcomeService interface {
	Create(ctx context.Context, cohortID string, req *dto.CreateOutcomeRequest, callerID string) (*model.LearningOutcome, error)
	GetByID(ctx context.Context, id string) (*model.LearningOutcome, error)
	ListByCohort(ctx context.Context, cohortID string) ([]model.LearningOutcome, error)
	Update(ctx context.Context, id string, req *dto.UpdateOutcomeRequest, callerID string) (*model.LearningOutcome, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, cohortID string, req *dto.ReorderRequest) error

	ListVisionLinks(ctx context.Context, outcomeID string) ([]model.OutcomeVisionLink, error)
	// SetVisionLinks replaces the outcome's vision links. Every vision must
	// belong to the outcome's cohort.
	SetVisionLinks(ctx context.Context, outcomeID string, req *dto.SetOutcomeVisionLinksRequest) ([]model.OutcomeVisionLink, error)
}

type outcomeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewOutcomeService(repo *repository.Repository, logger *zap.Logger) OutcomeService {
	return &outcomeService{repo: repo, logger: logger}
}

func (s *outcomeService) Create(ctx context.Context, cohortID string, req *dto.CreateOutcomeRequest, callerID string) (*model.LearningOutcome, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return nil, storeErr(err, ErrCohortNotFound)
	}
	order, err := nextSortOrder(ctx, s.repo.Outcome, cohortID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	o := &model.LearningOutcome{
		CohortID:    cohortID,
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		BloomLevel:  model.BloomLevel(req.BloomLevel),
		Category:    model.OutcomeCategory(req.Category),
		SortOrder:   order,
	}
	o.Stamp(callerID)
	if err := s.repo.Outcome.Create(ctx, o); err != nil {
		return nil, logInternal(s.logger, "create outcome failed", pkgerrors.FromStore(err), zap.String("cohort_id", cohortID))
	}
	return o, nil
}

func (s *outcomeService) GetByID(ctx context.Context, id string) (*model.LearningOutcome, error) {
	o, err := s.repo.Outcome.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get outcome failed", storeErr(err, ErrOutcomeNotFound), zap.String("id", id))
	}
	return o, nil
}

func (s *outcomeService) ListByCohort(ctx context.Context, cohortID string) ([]model.LearningOutcome, error) {
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return nil, storeErr(err, ErrCohortNotFound)
	}
	list, err := s.repo.Outcome.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "list outcomes failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *outcomeService) Update(ctx context.Context, id string, req *dto.UpdateOutcomeRequest, callerID string) (*model.LearningOutcome, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	o, err := s.repo.Outcome.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrOutcomeNotFound)
	}
	if req.Code != nil {
		o.Code = *req.Code
	}
	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.BloomLevel != nil {
		o.BloomLevel = model.BloomLevel(*req.BloomLevel)
	}
	if req.Category != nil {
		o.Category = model.OutcomeCategory(*req.Category)
	}
	o.Touch(callerID)
	if err := s.repo.Outcome.Update(ctx, o); err != nil {
		return nil, logInternal(s.logger, "update outcome failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return o, nil
}

func (s *outcomeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Outcome.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete outcome failed", storeErr(err, ErrOutcomeNotFound), zap.String("id", id))
	}
	return nil
}

func (s *outcomeService) Reorder(ctx context.Context, cohortID string, req *dto.ReorderRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return storeErr(err, ErrCohortNotFound)
	}
	err := reorderSiblings(ctx, s.repo, func(tx *repository.Repository) repository.Siblings { return tx.Outcome }, cohortID, req.IDs)
	return logInternal(s.logger, "reorder outcomes failed", err, zap.String("cohort_id", cohortID))
}

// ────────────────────── vision links ──────────────────────

func (s *outcomeService) ListVisionLinks(ctx context.Context, outcomeID string) ([]model.OutcomeVisionLink, error) {
	if _, err := s.repo.Outcome.GetByID(ctx, outcomeID); err != nil {
		return nil, storeErr(err, ErrOutcomeNotFound)
	}
	links, err := s.repo.Link.ListOutcomeVisionLinks(ctx, outcomeID)
	if err != nil {
		return nil, logInternal(s.logger, "list outcome vision links failed", pkgerrors.FromStore(err))
	}
	return links, nil
}

func (s *outcomeService) SetVisionLinks(ctx context.Context, outcomeID string, req *dto.SetOutcomeVisionLinksRequest) ([]model.OutcomeVisionLink, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.Links))
	links := make([]model.OutcomeVisionLink, 0, len(req.Links))
	for _, in := range req.Links {
		ids = append(ids, in.VisionID)
		rel := model.RelevancePrimary
		if in.Relevance != "" {
			rel = model.Relevance(in.Relevance)
		}
		links = append(links, model.OutcomeVisionLink{OutcomeID: outcomeID, VisionID: in.VisionID, Relevance: rel})
	}
	if dup, ok := firstDuplicate(ids); ok {
		return nil, pkgerrors.FieldError("links", "vision "+dup+" is listed twice")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		outcome, err := tx.Outcome.GetByID(ctx, outcomeID)
		if err != nil {
			return storeErr(err, ErrOutcomeNotFound)
		}
		if err := requireVisionsInCohort(ctx, tx, outcome.CohortID, ids); err != nil {
			return err
		}
		return pkgerrors.FromStore(tx.Link.ReplaceOutcomeVisionLinks(ctx, outcomeID, links))
	})
	if err != nil {
		return nil, logInternal(s.logger, "set outcome vision links failed", err, zap.String("outcome_id", outcomeID))
	}
	return links, nil
}
