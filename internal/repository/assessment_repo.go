package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// AssessmentRepository assessments data access.
type AssessmentRepository interface {
	CRUD[model.Assessment]
	Siblings
	ListByBlock(ctx context.Context, blockID string) ([]model.Assessment, error)
}

type assessmentRepo struct {
	table[model.Assessment]
	siblings
}

func NewAssessmentRepo(db *gorm.DB) AssessmentRepository {
	return &assessmentRepo{
		table:    table[model.Assessment]{db: db, idColumn: "assessment_id"},
		siblings: siblings{db: db, table: "assessments", idColumn: "assessment_id", parentColumn: "block_id"},
	}
}

func (r *assessmentRepo) ListByBlock(ctx context.Context, blockID string) ([]model.Assessment, error) {
	var rows []model.Assessment
	err := r.table.db.WithContext(ctx).
		Preload("Outcomes").
		Where("block_id = ?", blockID).
		Order("sort_order ASC").
		Find(&rows).Error
	return rows, err
}

// CriterionRepository assessment_criteria data access.
type CriterionRepository interface {
	CRUD[model.AssessmentCriterion]
	Siblings
	ListByAssessment(ctx context.Context, assessmentID string) ([]model.AssessmentCriterion, error)
}

type criterionRepo struct {
	table[model.AssessmentCriterion]
	siblings
}

func NewCriterionRepo(db *gorm.DB) CriterionRepository {
	return &criterionRepo{
		table:    table[model.AssessmentCriterion]{db: db, idColumn: "criterion_id"},
		siblings: siblings{db: db, table: "assessment_criteria", idColumn: "criterion_id", parentColumn: "assessment_id"},
	}
}

func (r *criterionRepo) ListByAssessment(ctx context.Context, assessmentID string) ([]model.AssessmentCriterion, error) {
	var rows []model.AssessmentCriterion
	err := r.table.db.WithContext(ctx).
		Preload("Levels", func(db *gorm.DB) *gorm.DB { return db.Order("level_number ASC") }).
		Where("assessment_id = ?", assessmentID).
		Order("sort_order ASC").
		Find(&rows).Error
	return rows, err
}

// RubricLevelRepository rubric_levels data access.
type RubricLevelRepository interface {
	CRUD[model.RubricLevel]
	ListByCriterion(ctx context.Context, criterionID string) ([]model.RubricLevel, error)
}

type rubricLevelRepo struct {
	table[model.RubricLevel]
}

func NewRubricLevelRepo(db *gorm.DB) RubricLevelRepository {
	return &rubricLevelRepo{table[model.RubricLevel]{db: db, idColumn: "rubric_level_id"}}
}

func (r *rubricLevelRepo) ListByCriterion(ctx context.Context, criterionID string) ([]model.RubricLevel, error) {
	return r.listWhere(ctx, "level_number ASC", "criterion_id = ?", criterionID)
}
