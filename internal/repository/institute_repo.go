package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// InstituteRepository institutes data access.
type InstituteRepository interface {
	CRUD[model.Institute]
	List(ctx context.Context) ([]model.Institute, error)
}

type instituteRepo struct {
	table[model.Institute]
}

func NewInstituteRepo(db *gorm.DB) InstituteRepository {
	return &instituteRepo{table[model.Institute]{db: db, idColumn: "institute_id"}}
}

func (r *instituteRepo) List(ctx context.Context) ([]model.Institute, error) {
	var rows []model.Institute
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// AcademyRepository academies data access.
type AcademyRepository interface {
	CRUD[model.Academy]
	ListByInstitute(ctx context.Context, instituteID string) ([]model.Academy, error)
}

type academyRepo struct {
	table[model.Academy]
}

func NewAcademyRepo(db *gorm.DB) AcademyRepository {
	return &academyRepo{table[model.Academy]{db: db, idColumn: "academy_id"}}
}

func (r *academyRepo) ListByInstitute(ctx context.Context, instituteID string) ([]model.Academy, error) {
	return r.listWhere(ctx, "name ASC", "institute_id = ?", instituteID)
}
