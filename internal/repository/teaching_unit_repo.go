package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// TeachingUnitRepository teaching_units data access.
type TeachingUnitRepository interface {
	CRUD[model.TeachingUnit]
	Siblings
	ListByBlock(ctx context.Context, blockID string) ([]model.TeachingUnit, error)
}

type teachingUnitRepo struct {
	table[model.TeachingUnit]
	siblings
}

func NewTeachingUnitRepo(db *gorm.DB) TeachingUnitRepository {
	return &teachingUnitRepo{
		table:    table[model.TeachingUnit]{db: db, idColumn: "teaching_unit_id"},
		siblings: siblings{db: db, table: "teaching_units", idColumn: "teaching_unit_id", parentColumn: "block_id"},
	}
}

func (r *teachingUnitRepo) ListByBlock(ctx context.Context, blockID string) ([]model.TeachingUnit, error) {
	return r.listWhere(ctx, "sort_order ASC", "block_id = ?", blockID)
}

// WeekPlanningRepository week_plannings data access.
type WeekPlanningRepository interface {
	CRUD[model.WeekPlanning]
	ListByUnit(ctx context.Context, teachingUnitID string) ([]model.WeekPlanning, error)
}

type weekPlanningRepo struct {
	table[model.WeekPlanning]
}

func NewWeekPlanningRepo(db *gorm.DB) WeekPlanningRepository {
	return &weekPlanningRepo{table[model.WeekPlanning]{db: db, idColumn: "week_planning_id"}}
}

func (r *weekPlanningRepo) ListByUnit(ctx context.Context, teachingUnitID string) ([]model.WeekPlanning, error) {
	var rows []model.WeekPlanning
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("teaching_unit_id = ?", teachingUnitID).
		Order("week_number ASC").
		Find(&rows).Error
	return rows, err
}

// LearningActivityRepository learning_activities data access.
type LearningActivityRepository interface {
	CRUD[model.LearningActivity]
	Siblings
	ListByWeek(ctx context.Context, weekPlanningID string) ([]model.LearningActivity, error)
}

type learningActivityRepo struct {
	table[model.LearningActivity]
	siblings
}

func NewLearningActivityRepo(db *gorm.DB) LearningActivityRepository {
	return &learningActivityRepo{
		table:    table[model.LearningActivity]{db: db, idColumn: "activity_id"},
		siblings: siblings{db: db, table: "learning_activities", idColumn: "activity_id", parentColumn: "week_planning_id"},
	}
}

func (r *learningActivityRepo) ListByWeek(ctx context.Context, weekPlanningID string) ([]model.LearningActivity, error) {
	return r.listWhere(ctx, "sort_order ASC", "week_planning_id = ?", weekPlanningID)
}

// AssignmentRepository assignments data access.
type AssignmentRepository interface {
	CRUD[model.Assignment]
	Siblings
	ListByUnit(ctx context.Context, teachingUnitID string) ([]model.Assignment, error)
}

type assignmentRepo struct {
	table[model.Assignment]
	siblings
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{
		table:    table[model.Assignment]{db: db, idColumn: "assignment_id"},
		siblings: siblings{db: db, table: "assignments", idColumn: "assignment_id", parentColumn: "teaching_unit_id"},
	}
}

func (r *assignmentRepo) ListByUnit(ctx context.Context, teachingUnitID string) ([]model.Assignment, error) {
	return r.listWhere(ctx, "sort_order ASC", "teaching_unit_id = ?", teachingUnitID)
}
