package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/validate"
)

var (
	ErrCohortNotFound           = pkgerrors.NotFound("cohort not found")
	ErrCohortAlreadyInitialized = pkgerrors.Conflict("cohort already has visions or academic years")
	ErrCohortActivationConflict = pkgerrors.Constraint("uq_cohorts_one_active_per_program", "another cohort of this program is already active")
)

// DefaultTargetCredits is the credit target of a freshly created academic year.
const DefaultTargetCredits = 60

var defaultVisionTitles = map[model.VisionType]string{
	model.VisionLearning:   "Visie op leren",
	model.VisionProfession: "Visie op het beroep",
	model.VisionAssessment: "Visie op toetsing",
}

// academicYearName names year n of a program: the first year is the
// propaedeutic year, later years are main phases counted from 1.
func academicYearName(n int) string {
	if n == 1 {
		return "Propedeuse"
	}
	return fmt.Sprintf("Hoofdfase %d", n-1)
}

// CohortService manages cohorts, their activation and initialization.
type CohortService interface {
	Create(ctx context.Context, programID string, req *dto.CreateCohortRequest, callerID string) (*model.Cohort, error)
	GetByID(ctx context.Context, id string) (*model.Cohort, error)
	ListByProgram(ctx context.Context, programID string) ([]model.Cohort, error)
	Update(ctx context.Context, id string, req *dto.UpdateCohortRequest, callerID string) (*model.Cohort, error)
	Delete(ctx context.Context, id string) error
	// Activate makes the cohort the single active cohort of its program.
	Activate(ctx context.Context, id string, callerID string) (*model.Cohort, error)
	// Initialize seeds a new cohort with its three visions and one academic
	// year per program year. A cohort that already has either is rejected.
	Initialize(ctx context.Context, id string, callerID string) (*dto.InitializeCohortResponse, error)
}

type cohortService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewCohortService(repo *repository.Repository, logger *zap.Logger) CohortService {
	return &cohortService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *cohortService) Create(ctx context.Context, programID string, req *dto.CreateCohortRequest, callerID string) (*model.Cohort, error) {
	if err := validate.Merge(validate.Struct(req), yearRangeErrors(req.StartYear, req.EndYear)); err != nil {
		return nil, err
	}

	cohort := &model.Cohort{
		ProgramID: programID,
		Name:      req.Name,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Status:    model.CohortDraft,
	}
	if req.Status != "" {
		cohort.Status = model.CohortStatus(req.Status)
	}
	cohort.Stamp(callerID)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Program.GetByID(ctx, programID); err != nil {
			return storeErr(err, ErrProgramNotFound)
		}
		if err := tx.Cohort.Create(ctx, cohort); err != nil {
			return pkgerrors.FromStore(err)
		}
		if !req.IsActive {
			return nil
		}
		if err := tx.Cohort.Activate(ctx, programID, cohort.CohortID); err != nil {
			return activationErr(err)
		}
		cohort.IsActive = true
		return nil
	})
	if err != nil {
		return nil, logInternal(s.logger, "create cohort failed", err, zap.String("program_id", programID))
	}
	return cohort, nil
}

// ────────────────────── Get / List ──────────────────────

func (s *cohortService) GetByID(ctx context.Context, id string) (*model.Cohort, error) {
	cohort, err := s.repo.Cohort.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get cohort failed", storeErr(err, ErrCohortNotFound), zap.String("id", id))
	}
	return cohort, nil
}

func (s *cohortService) ListByProgram(ctx context.Context, programID string) ([]model.Cohort, error) {
	if _, err := s.repo.Program.GetByID(ctx, programID); err != nil {
		return nil, storeErr(err, ErrProgramNotFound)
	}
	list, err := s.repo.Cohort.ListByProgram(ctx, programID)
	if err != nil {
		return nil, logInternal(s.logger, "list cohorts failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

// ────────────────────── Update ──────────────────────

func (s *cohortService) Update(ctx context.Context, id string, req *dto.UpdateCohortRequest, callerID string) (*model.Cohort, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var result *model.Cohort
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		cohort, err := tx.Cohort.GetByID(ctx, id)
		if err != nil {
			return storeErr(err, ErrCohortNotFound)
		}

		if req.Name != nil {
			cohort.Name = *req.Name
		}
		if req.StartYear != nil {
			cohort.StartYear = *req.StartYear
		}
		if req.EndYear != nil {
			cohort.EndYear = *req.EndYear
		}
		if err := validate.Merge(nil, yearRangeErrors(cohort.StartYear, cohort.EndYear)); err != nil {
			return err
		}
		if req.Status != nil {
			cohort.Status = model.CohortStatus(*req.Status)
		}
		// Deactivation is a plain column write; activation goes through
		// Activate so the other cohorts of the program are cleared.
		activate := req.IsActive != nil && *req.IsActive && !cohort.IsActive
		if req.IsActive != nil && !*req.IsActive {
			cohort.IsActive = false
		}
		cohort.Touch(callerID)

		if err := tx.Cohort.Update(ctx, cohort); err != nil {
			return activationErr(err)
		}
		if activate {
			if err := tx.Cohort.Activate(ctx, cohort.ProgramID, cohort.CohortID); err != nil {
				return activationErr(err)
			}
			cohort.IsActive = true
		}
		result = cohort
		return nil
	})
	if err != nil {
		return nil, logInternal(s.logger, "update cohort failed", err, zap.String("id", id))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes the cohort and everything it owns.
func (s *cohortService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Cohort.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete cohort failed", storeErr(err, ErrCohortNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── Activate ──────────────────────

func (s *cohortService) Activate(ctx context.Context, id string, callerID string) (*model.Cohort, error) {
	var result *model.Cohort
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		cohort, err := tx.Cohort.GetByID(ctx, id)
		if err != nil {
			return storeErr(err, ErrCohortNotFound)
		}
		if err := tx.Cohort.Activate(ctx, cohort.ProgramID, cohort.CohortID); err != nil {
			return activationErr(err)
		}
		cohort.IsActive = true
		cohort.Touch(callerID)
		if err := tx.Cohort.Update(ctx, cohort); err != nil {
			return activationErr(err)
		}
		result = cohort
		return nil
	})
	if err != nil {
		return nil, logInternal(s.logger, "activate cohort failed", err, zap.String("id", id))
	}
	return result, nil
}

// ────────────────────── Initialize ──────────────────────

func (s *cohortService) Initialize(ctx context.Context, id string, callerID string) (*dto.InitializeCohortResponse, error) {
	resp := &dto.InitializeCohortResponse{CohortID: id}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		cohort, err := tx.Cohort.GetByID(ctx, id)
		if err != nil {
			return storeErr(err, ErrCohortNotFound)
		}
		program, err := tx.Program.GetByID(ctx, cohort.ProgramID)
		if err != nil {
			return storeErr(err, ErrProgramNotFound)
		}

		initialized, err := tx.Cohort.HasContent(ctx, id)
		if err != nil {
			return pkgerrors.FromStore(err)
		}
		if initialized {
			return ErrCohortAlreadyInitialized
		}

		for _, vt := range model.VisionTypes {
			v := model.Vision{
				CohortID: id,
				Type:     vt,
				Title:    defaultVisionTitles[vt],
				Status:   model.StatusDraft,
			}
			v.Stamp(callerID)
			if err := tx.Vision.Create(ctx, &v); err != nil {
				// a concurrent Initialize got there first
				if pkgerrors.IsConstraint(pkgerrors.FromStore(err), ErrVisionTypeExists.Constraint) {
					return ErrCohortAlreadyInitialized
				}
				return pkgerrors.FromStore(err)
			}
			resp.Visions = append(resp.Visions, v)
		}

		for n := 1; n <= program.DurationYears; n++ {
			y := model.AcademicYear{
				CohortID:      id,
				YearNumber:    n,
				Name:          academicYearName(n),
				TargetCredits: DefaultTargetCredits,
				SortOrder:     n,
			}
			y.Stamp(callerID)
			if err := tx.AcademicYear.Create(ctx, &y); err != nil {
				return pkgerrors.FromStore(err)
			}
			resp.AcademicYears = append(resp.AcademicYears, y)
		}
		return nil
	})
	if err != nil {
		return nil, logInternal(s.logger, "initialize cohort failed", err, zap.String("id", id))
	}

	s.logger.Info("cohort initialized",
		zap.String("cohort_id", id),
		zap.Int("visions", len(resp.Visions)),
		zap.Int("academic_years", len(resp.AcademicYears)),
	)
	return resp, nil
}

// ── helpers ──

func yearRangeErrors(start, end int) map[string]string {
	if end <= start {
		return map[string]string{"end_year": "must be greater than start_year"}
	}
	return nil
}

func activationErr(err error) error {
	err = pkgerrors.FromStore(err)
	if pkgerrors.IsConstraint(err, ErrCohortActivationConflict.Constraint) {
		return ErrCohortActivationConflict
	}
	return err
}
