package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
)

// Service aggregates every business service.
type Service struct {
	Institute    InstituteService
	Program      ProgramService
	Cohort       CohortService
	Vision       VisionService
	Outcome      OutcomeService
	Curriculum   CurriculumService
	TeachingUnit TeachingUnitService
	Assessment   AssessmentService
	Dashboard    DashboardService
	Export       ExportService
}

// NewService wires the services onto one repository aggregate.
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	dashboard := NewDashboardService(repo, logger)
	return &Service{
		Institute:    NewInstituteService(repo, logger),
		Program:      NewProgramService(repo, logger),
		Cohort:       NewCohortService(repo, logger),
		Vision:       NewVisionService(repo, logger),
		Outcome:      NewOutcomeService(repo, logger),
		Curriculum:   NewCurriculumService(repo, logger),
		TeachingUnit: NewTeachingUnitService(repo, logger),
		Assessment:   NewAssessmentService(repo, logger),
		Dashboard:    dashboard,
		Export:       NewExportService(repo, dashboard, logger),
	}
}

// ErrReorderMismatch is returned when a reorder request does not list
// every current sibling exactly once.
var ErrReorderMismatch = pkgerrors.InvalidArgument("ids must list every sibling exactly once")

// storeErr translates a repository failure. A missing row becomes notFound,
// everything else goes through pkgerrors.FromStore.
func storeErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return pkgerrors.FromStore(err)
}

// logInternal logs err when it is not one of the typed domain failures.
func logInternal(logger *zap.Logger, msg string, err error, fields ...zap.Field) error {
	if err != nil && pkgerrors.KindOf(err) == pkgerrors.KindInternal {
		logger.Error(msg, append(fields, zap.Error(err))...)
	}
	return err
}

// ── sibling ordering ──

// nextSortOrder keeps an explicit position or appends after the last sibling.
func nextSortOrder(ctx context.Context, s repository.Siblings, parentID string, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	return s.NextSortOrder(ctx, parentID)
}

// reorderSiblings rewrites one sibling group to the order of ids inside a
// single transaction. group picks the sibling repository off the
// transaction-bound aggregate.
func reorderSiblings(
	ctx context.Context,
	repo *repository.Repository,
	group func(*repository.Repository) repository.Siblings,
	parentID string,
	ids []string,
) error {
	return repo.Transaction(ctx, func(tx *repository.Repository) error {
		s := group(tx)
		current, err := s.LockSiblingIDs(ctx, parentID)
		if err != nil {
			return pkgerrors.FromStore(err)
		}
		if err := checkSiblingSet(current, ids); err != nil {
			return err
		}
		if err := s.SetSortOrders(ctx, parentID, ids); err != nil {
			return pkgerrors.FromStore(err)
		}
		return nil
	})
}

// checkSiblingSet requires ids to be a permutation of current.
func checkSiblingSet(current, ids []string) error {
	if len(current) != len(ids) {
		return ErrReorderMismatch
	}
	want := make(map[string]struct{}, len(current))
	for _, id := range current {
		want[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := want[id]; !ok {
			return ErrReorderMismatch
		}
		delete(want, id)
	}
	return nil
}

// ── ownership ──
//
// Link records may only join records of one cohort. These helpers walk the
// owns-edges up to the cohort.

func loadYear(ctx context.Context, repo *repository.Repository, yearID string) (*model.AcademicYear, error) {
	year, err := repo.AcademicYear.GetByID(ctx, yearID)
	if err != nil {
		return nil, storeErr(err, ErrAcademicYearNotFound)
	}
	return year, nil
}

// cohortOfBlock returns the block and the id of its cohort.
func cohortOfBlock(ctx context.Context, repo *repository.Repository, blockID string) (*model.Block, string, error) {
	block, err := repo.Block.GetByID(ctx, blockID)
	if err != nil {
		return nil, "", storeErr(err, ErrBlockNotFound)
	}
	year, err := loadYear(ctx, repo, block.AcademicYearID)
	if err != nil {
		return nil, "", err
	}
	return block, year.CohortID, nil
}

// cohortOfUnit returns the teaching unit and the id of its cohort.
func cohortOfUnit(ctx context.Context, repo *repository.Repository, unitID string) (*model.TeachingUnit, string, error) {
	unit, err := repo.TeachingUnit.GetByID(ctx, unitID)
	if err != nil {
		return nil, "", storeErr(err, ErrTeachingUnitNotFound)
	}
	_, cohortID, err := cohortOfBlock(ctx, repo, unit.BlockID)
	if err != nil {
		return nil, "", err
	}
	return unit, cohortID, nil
}

// requireOutcomesInCohort loads ids and fails with ErrOutcomeNotFound unless
// every one exists and belongs to cohortID.
func requireOutcomesInCohort(ctx context.Context, repo *repository.Repository, cohortID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	outcomes, err := repo.Outcome.ListByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.FromStore(err)
	}
	found := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		if o.CohortID == cohortID {
			found[o.OutcomeID] = true
		}
	}
	for _, id := range ids {
		if !found[id] {
			return ErrOutcomeNotFound
		}
	}
	return nil
}

// requireVisionsInCohort is requireOutcomesInCohort for visions.
func requireVisionsInCohort(ctx context.Context, repo *repository.Repository, cohortID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	visions, err := repo.Vision.ListByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.FromStore(err)
	}
	found := make(map[string]bool, len(visions))
	for _, v := range visions {
		if v.CohortID == cohortID {
			found[v.VisionID] = true
		}
	}
	for _, id := range ids {
		if !found[id] {
			return ErrVisionNotFound
		}
	}
	return nil
}

// firstDuplicate reports the first id listed twice, if any.
func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
