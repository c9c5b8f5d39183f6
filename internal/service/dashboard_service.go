package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
)

// DashboardService serves the read-only cohort views: credit overview and
// outcome coverage. Nothing is cached; every call reads the store.
type DashboardService interface {
	CreditOverview(ctx context.Context, cohortID string) (*dto.CreditOverviewResponse, error)
	CoverageMatrix(ctx context.Context, cohortID string) (*dto.CoverageMatrixResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// CreditOverview compares the planned credits of each academic year with
// its target and the cohort total with the program total.
func (s *dashboardService) CreditOverview(ctx context.Context, cohortID string) (*dto.CreditOverviewResponse, error) {
	cohort, err := s.repo.Cohort.GetByID(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "get cohort failed", storeErr(err, ErrCohortNotFound), zap.String("cohort_id", cohortID))
	}
	program, err := s.repo.Program.GetByID(ctx, cohort.ProgramID)
	if err != nil {
		return nil, logInternal(s.logger, "get program failed", storeErr(err, ErrProgramNotFound), zap.String("program_id", cohort.ProgramID))
	}
	years, err := s.repo.AcademicYear.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "list academic years failed", pkgerrors.FromStore(err), zap.String("cohort_id", cohortID))
	}

	resp := &dto.CreditOverviewResponse{
		CohortID:            cohortID,
		Unit:                program.EducationType.CreditUnit(),
		Years:               make([]dto.YearCreditOverview, 0, len(years)),
		ProgramTotalCredits: program.TotalCredits,
	}
	for _, y := range years {
		credits, err := s.repo.Block.SumCreditsByYear(ctx, y.AcademicYearID)
		if err != nil {
			return nil, logInternal(s.logger, "sum year credits failed", pkgerrors.FromStore(err), zap.String("academic_year_id", y.AcademicYearID))
		}
		resp.Years = append(resp.Years, dto.YearCreditOverview{
			AcademicYearID: y.AcademicYearID,
			YearNumber:     y.YearNumber,
			Name:           y.Name,
			Credits:        credits,
			TargetCredits:  y.TargetCredits,
			Difference:     credits - y.TargetCredits,
		})
		resp.TotalCredits += credits
	}
	resp.Difference = resp.TotalCredits - resp.ProgramTotalCredits
	return resp, nil
}

func (s *dashboardService) CoverageMatrix(ctx context.Context, cohortID string) (*dto.CoverageMatrixResponse, error) {
	if _, err := s.repo.Cohort.GetByID(ctx, cohortID); err != nil {
		return nil, logInternal(s.logger, "get cohort failed", storeErr(err, ErrCohortNotFound), zap.String("cohort_id", cohortID))
	}
	outcomes, err := s.repo.Outcome.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "list outcomes failed", pkgerrors.FromStore(err), zap.String("cohort_id", cohortID))
	}
	blocks, err := s.repo.Block.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "list blocks failed", pkgerrors.FromStore(err), zap.String("cohort_id", cohortID))
	}
	pairs, err := s.repo.Link.ListCoverageByCohort(ctx, cohortID)
	if err != nil {
		return nil, logInternal(s.logger, "list coverage failed", pkgerrors.FromStore(err), zap.String("cohort_id", cohortID))
	}

	m := BuildCoverageMatrix(outcomes, blocks, pairs)
	m.CohortID = cohortID
	return m, nil
}

// BuildCoverageMatrix lays outcomes out as rows and blocks as columns, both
// in the order given. A cell is true when links holds the (block, outcome)
// pair; pairs naming unknown rows or columns are ignored.
func BuildCoverageMatrix(outcomes []model.LearningOutcome, blocks []repository.CohortBlock, links []repository.CoveragePair) *dto.CoverageMatrixResponse {
	col := make(map[string]int, len(blocks))
	m := &dto.CoverageMatrixResponse{
		Columns: make([]dto.CoverageColumn, len(blocks)),
		Rows:    make([]dto.CoverageRow, len(outcomes)),
	}
	for j, b := range blocks {
		col[b.BlockID] = j
		m.Columns[j] = dto.CoverageColumn{BlockID: b.BlockID, Code: b.Code, Name: b.Name, YearNumber: b.YearNumber}
	}

	row := make(map[string]int, len(outcomes))
	for i, o := range outcomes {
		row[o.OutcomeID] = i
		m.Rows[i] = dto.CoverageRow{
			OutcomeID: o.OutcomeID,
			Code:      o.Code,
			Title:     o.Title,
			Cells:     make([]bool, len(blocks)),
		}
	}

	for _, p := range links {
		i, ok := row[p.OutcomeID]
		if !ok {
			continue
		}
		j, ok := col[p.BlockID]
		if !ok || m.Rows[i].Cells[j] {
			continue
		}
		m.Rows[i].Cells[j] = true
		m.Rows[i].TotalAssessments++
	}
	return m
}
