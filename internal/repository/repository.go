package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn inside one unit of work. The *Repository handed to fn
// is bound to the transaction; returning an error rolls everything back.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx *Repository) error) error
}

// Repository aggregates every repository of the curriculum store.
type Repository struct {
	Tx Transactor

	Institute    InstituteRepository
	Academy      AcademyRepository
	Program      ProgramRepository
	MBOConfig    MBOConfigRepository
	HBOConfig    HBOConfigRepository
	Kerntaak     KerntaakRepository
	Werkproces   WerkprocesRepository
	Keuzedeel    KeuzedeelRepository
	Cohort       CohortRepository
	Vision       VisionRepository
	Principle    PrincipleRepository
	Outcome      OutcomeRepository
	AcademicYear AcademicYearRepository
	Block        BlockRepository
	TeachingUnit TeachingUnitRepository
	WeekPlanning WeekPlanningRepository
	Activity     LearningActivityRepository
	Assignment   AssignmentRepository
	Assessment   AssessmentRepository
	Criterion    CriterionRepository
	RubricLevel  RubricLevelRepository
	Link         LinkRepository
}

// NewRepository builds the aggregate on db, which may itself be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Tx: &gormTransactor{db: db},

		Institute:    NewInstituteRepo(db),
		Academy:      NewAcademyRepo(db),
		Program:      NewProgramRepo(db),
		MBOConfig:    NewMBOConfigRepo(db),
		HBOConfig:    NewHBOConfigRepo(db),
		Kerntaak:     NewKerntaakRepo(db),
		Werkproces:   NewWerkprocesRepo(db),
		Keuzedeel:    NewKeuzedeelRepo(db),
		Cohort:       NewCohortRepo(db),
		Vision:       NewVisionRepo(db),
		Principle:    NewPrincipleRepo(db),
		Outcome:      NewOutcomeRepo(db),
		AcademicYear: NewAcademicYearRepo(db),
		Block:        NewBlockRepo(db),
		TeachingUnit: NewTeachingUnitRepo(db),
		WeekPlanning: NewWeekPlanningRepo(db),
		Activity:     NewLearningActivityRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Assessment:   NewAssessmentRepo(db),
		Criterion:    NewCriterionRepo(db),
		RubricLevel:  NewRubricLevelRepo(db),
		Link:         NewLinkRepo(db),
	}
}

// Transaction runs fn in a unit of work. Without a Transactor fn runs
// directly on r.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.Tx == nil {
		return fn(r)
	}
	return r.Tx.Transaction(ctx, fn)
}

type gormTransactor struct {
	db *gorm.DB
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
