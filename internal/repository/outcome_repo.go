package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// OutcomeRepository learning_outcomes data access.
type OutcomeRepository interface {
	CRUD[model.LearningOutcome]
	Siblings
	ListByCohort(ctx context.Context, cohortID string) ([]model.LearningOutcome, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.LearningOutcome, error)
}

type outcomeRepo struct {
	table[model.LearningOutcome]
	siblings
}

func NewOutcomeRepo(db *gorm.DB) OutcomeRepository {
	return &outcomeRepo{
		table:    table[model.LearningOutcome]{db: db, idColumn: "outcome_id"},
		siblings: siblings{db: db, table: "learning_outcomes", idColumn: "outcome_id", parentColumn: "cohort_id"},
	}
}

func (r *outcomeRepo) ListByCohort(ctx context.Context, cohortID string) ([]model.LearningOutcome, error) {
	return r.listWhere(ctx, "sort_order ASC, code ASC", "cohort_id = ?", cohortID)
}

func (r *outcomeRepo) ListByIDs(ctx context.Context, ids []string) ([]model.LearningOutcome, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.listWhere(ctx, "sort_order ASC", "outcome_id IN ?", ids)
}
