package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// CohortRepository cohorts data access.
type CohortRepository interface {
	CRUD[model.Cohort]
	ListByProgram(ctx context.Context, programID string) ([]model.Cohort, error)
	// Activate makes cohortID the only active cohort of programID. It must
	// run inside a transaction; uq_cohorts_one_active_per_program backs it.
	Activate(ctx context.Context, programID, cohortID string) error
	// HasContent reports whether the cohort already owns visions or years.
	HasContent(ctx context.Context, cohortID string) (bool, error)
}

type cohortRepo struct {
	table[model.Cohort]
}

func NewCohortRepo(db *gorm.DB) CohortRepository {
	return &cohortRepo{table[model.Cohort]{db: db, idColumn: "cohort_id"}}
}

func (r *cohortRepo) ListByProgram(ctx context.Context, programID string) ([]model.Cohort, error) {
	return r.listWhere(ctx, "start_year DESC, name ASC", "program_id = ?", programID)
}

func (r *cohortRepo) Activate(ctx context.Context, programID, cohortID string) error {
	db := r.db.WithContext(ctx)

	// Lock the whole program group so concurrent activations queue up and
	// the last one to commit wins.
	var ids []string
	if err := db.Model(&model.Cohort{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("program_id = ?", programID).
		Pluck("cohort_id", &ids).Error; err != nil {
		return err
	}

	if err := db.Model(&model.Cohort{}).
		Where("program_id = ? AND is_active AND cohort_id <> ?", programID, cohortID).
		UpdateColumns(map[string]interface{}{
			"is_active":  false,
			"updated_at": gorm.Expr("NOW()"),
		}).Error; err != nil {
		return err
	}

	res := db.Model(&model.Cohort{}).
		Where("cohort_id = ? AND program_id = ?", cohortID, programID).
		UpdateColumns(map[string]interface{}{
			"is_active":  true,
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cohortRepo) HasContent(ctx context.Context, cohortID string) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).Raw(
		`SELECT EXISTS (SELECT 1 FROM visions WHERE cohort_id = ?)
		     OR EXISTS (SELECT 1 FROM academic_years WHERE cohort_id = ?)`,
		cohortID, cohortID,
	).Scan(&exists).Error
	return exists, err
}
