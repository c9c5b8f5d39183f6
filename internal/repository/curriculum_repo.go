package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// AcademicYearRepository academic_years data access.
type AcademicYearRepository interface {
	CRUD[model.AcademicYear]
	ListByCohort(ctx context.Context, cohortID string) ([]model.AcademicYear, error)
}

type academicYearRepo struct {
	table[model.AcademicYear]
}

func NewAcademicYearRepo(db *gorm.DB) AcademicYearRepository {
	return &academicYearRepo{table[model.AcademicYear]{db: db, idColumn: "academic_year_id"}}
}

func (r *academicYearRepo) ListByCohort(ctx context.Context, cohortID string) ([]model.AcademicYear, error) {
	return r.listWhere(ctx, "year_number ASC, sort_order ASC", "cohort_id = ?", cohortID)
}

// CohortBlock is a block together with the number of the year it sits in.
type CohortBlock struct {
	model.Block
	YearNumber int `gorm:"column:year_number"`
}

// BlockRepository blocks data access plus credit aggregation.
type BlockRepository interface {
	CRUD[model.Block]
	Siblings
	ListByYear(ctx context.Context, academicYearID string) ([]model.Block, error)
	// ListByCohort returns every block of the cohort ordered by
	// (year_number, sort_order).
	ListByCohort(ctx context.Context, cohortID string) ([]CohortBlock, error)
	SumCreditsByYear(ctx context.Context, academicYearID string) (float64, error)
	SumCreditsByCohort(ctx context.Context, cohortID string) (float64, error)
}

type blockRepo struct {
	table[model.Block]
	siblings
}

func NewBlockRepo(db *gorm.DB) BlockRepository {
	return &blockRepo{
		table:    table[model.Block]{db: db, idColumn: "block_id"},
		siblings: siblings{db: db, table: "blocks", idColumn: "block_id", parentColumn: "academic_year_id"},
	}
}

func (r *blockRepo) ListByYear(ctx context.Context, academicYearID string) ([]model.Block, error) {
	return r.listWhere(ctx, "sort_order ASC", "academic_year_id = ?", academicYearID)
}

func (r *blockRepo) ListByCohort(ctx context.Context, cohortID string) ([]CohortBlock, error) {
	var rows []CohortBlock
	err := r.table.db.WithContext(ctx).
		Table("blocks AS b").
		Select("b.*, y.year_number").
		Joins("JOIN academic_years AS y ON y.academic_year_id = b.academic_year_id").
		Where("y.cohort_id = ?", cohortID).
		Order("y.year_number ASC, b.sort_order ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *blockRepo) SumCreditsByYear(ctx context.Context, academicYearID string) (float64, error) {
	var sum float64
	err := r.table.db.WithContext(ctx).
		Table("blocks").
		Select("COALESCE(SUM(credits), 0)").
		Where("academic_year_id = ?", academicYearID).
		Scan(&sum).Error
	return sum, err
}

func (r *blockRepo) SumCreditsByCohort(ctx context.Context, cohortID string) (float64, error) {
	var sum float64
	err := r.table.db.WithContext(ctx).
		Table("blocks AS b").
		Select("COALESCE(SUM(b.credits), 0)").
		Joins("JOIN academic_years AS y ON y.academic_year_id = b.academic_year_id").
		Where("y.cohort_id = ?", cohortID).
		Scan(&sum).Error
	return sum, err
}
