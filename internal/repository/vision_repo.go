package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// VisionRepository visions data access.
type VisionRepository interface {
	CRUD[model.Vision]
	ListByCohort(ctx context.Context, cohortID string) ([]model.Vision, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Vision, error)
}

type visionRepo struct {
	table[model.Vision]
}

func NewVisionRepo(db *gorm.DB) VisionRepository {
	return &visionRepo{table[model.Vision]{db: db, idColumn: "vision_id"}}
}

func (r *visionRepo) ListByCohort(ctx context.Context, cohortID string) ([]model.Vision, error) {
	var rows []model.Vision
	err := r.db.WithContext(ctx).
		Preload("Principles", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("cohort_id = ?", cohortID).
		Order("CASE vision_type WHEN 'LEARNING' THEN 1 WHEN 'PROFESSION' THEN 2 ELSE 3 END").
		Find(&rows).Error
	return rows, err
}

func (r *visionRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Vision, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.listWhere(ctx, "vision_id ASC", "vision_id IN ?", ids)
}

// PrincipleRepository vision_principles data access.
type PrincipleRepository interface {
	CRUD[model.VisionPrinciple]
	Siblings
	ListByVision(ctx context.Context, visionID string) ([]model.VisionPrinciple, error)
}

type principleRepo struct {
	table[model.VisionPrinciple]
	siblings
}

func NewPrincipleRepo(db *gorm.DB) PrincipleRepository {
	return &principleRepo{
		table:    table[model.VisionPrinciple]{db: db, idColumn: "principle_id"},
		siblings: siblings{db: db, table: "vision_principles", idColumn: "principle_id", parentColumn: "vision_id"},
	}
}

func (r *principleRepo) ListByVision(ctx context.Context, visionID string) ([]model.VisionPrinciple, error) {
	return r.listWhere(ctx, "sort_order ASC", "vision_id = ?", visionID)
}
