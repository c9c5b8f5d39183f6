package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// CoveragePair says that some assessment of BlockID links OutcomeID.
type CoveragePair struct {
	BlockID   string
	OutcomeID string
}

// LinkRepository handles the many-to-many link tables. Replace* deletes the
// owner's links and inserts the given set; callers run it in a transaction.
type LinkRepository interface {
	ListOutcomeVisionLinks(ctx context.Context, outcomeID string) ([]model.OutcomeVisionLink, error)
	ReplaceOutcomeVisionLinks(ctx context.Context, outcomeID string, links []model.OutcomeVisionLink) error

	ListBlockVisionRelations(ctx context.Context, blockID string) ([]model.BlockVisionRelation, error)
	ReplaceBlockVisionRelations(ctx context.Context, blockID string, rels []model.BlockVisionRelation) error

	ListAssignmentOutcomes(ctx context.Context, assignmentID string) ([]model.AssignmentOutcome, error)
	ReplaceAssignmentOutcomes(ctx context.Context, assignmentID string, links []model.AssignmentOutcome) error

	ListAssessmentOutcomes(ctx context.Context, assessmentID string) ([]model.AssessmentOutcome, error)
	ReplaceAssessmentOutcomes(ctx context.Context, assessmentID string, links []model.AssessmentOutcome) error

	// ListCoverageByCohort returns the distinct (block, outcome) pairs
	// connected through an assessment within the cohort.
	ListCoverageByCohort(ctx context.Context, cohortID string) ([]CoveragePair, error)
}

type linkRepo struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) LinkRepository {
	return &linkRepo{db: db}
}

func (r *linkRepo) ListOutcomeVisionLinks(ctx context.Context, outcomeID string) ([]model.OutcomeVisionLink, error) {
	var rows []model.OutcomeVisionLink
	err := r.db.WithContext(ctx).Where("outcome_id = ?", outcomeID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *linkRepo) ReplaceOutcomeVisionLinks(ctx context.Context, outcomeID string, links []model.OutcomeVisionLink) error {
	return replaceLinks(ctx, r.db, "outcome_id = ?", outcomeID, links)
}

func (r *linkRepo) ListBlockVisionRelations(ctx context.Context, blockID string) ([]model.BlockVisionRelation, error) {
	var rows []model.BlockVisionRelation
	err := r.db.WithContext(ctx).Where("block_id = ?", blockID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *linkRepo) ReplaceBlockVisionRelations(ctx context.Context, blockID string, rels []model.BlockVisionRelation) error {
	return replaceLinks(ctx, r.db, "block_id = ?", blockID, rels)
}

func (r *linkRepo) ListAssignmentOutcomes(ctx context.Context, assignmentID string) ([]model.AssignmentOutcome, error) {
	var rows []model.AssignmentOutcome
	err := r.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *linkRepo) ReplaceAssignmentOutcomes(ctx context.Context, assignmentID string, links []model.AssignmentOutcome) error {
	return replaceLinks(ctx, r.db, "assignment_id = ?", assignmentID, links)
}

func (r *linkRepo) ListAssessmentOutcomes(ctx context.Context, assessmentID string) ([]model.AssessmentOutcome, error) {
	var rows []model.AssessmentOutcome
	err := r.db.WithContext(ctx).Where("assessment_id = ?", assessmentID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *linkRepo) ReplaceAssessmentOutcomes(ctx context.Context, assessmentID string, links []model.AssessmentOutcome) error {
	return replaceLinks(ctx, r.db, "assessment_id = ?", assessmentID, links)
}

func (r *linkRepo) ListCoverageByCohort(ctx context.Context, cohortID string) ([]CoveragePair, error) {
	var pairs []CoveragePair
	err := r.db.WithContext(ctx).
		Table("assessment_outcomes AS ao").
		Select("DISTINCT a.block_id AS block_id, ao.outcome_id AS outcome_id").
		Joins("JOIN assessments AS a ON a.assessment_id = ao.assessment_id").
		Joins("JOIN blocks AS b ON b.block_id = a.block_id").
		Joins("JOIN academic_years AS y ON y.academic_year_id = b.academic_year_id").
		Where("y.cohort_id = ?", cohortID).
		Scan(&pairs).Error
	return pairs, err
}

func replaceLinks[T any](ctx context.Context, db *gorm.DB, ownerQuery, ownerID string, links []T) error {
	if err := db.WithContext(ctx).Where(ownerQuery, ownerID).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&links).Error
}
