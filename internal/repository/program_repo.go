package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

// ProgramRepository programs data access.
type ProgramRepository interface {
	CRUD[model.Program]
	ListByAcademy(ctx context.Context, academyID string) ([]model.Program, error)
}

type programRepo struct {
	table[model.Program]
}

func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{table[model.Program]{db: db, idColumn: "program_id"}}
}

func (r *programRepo) ListByAcademy(ctx context.Context, academyID string) ([]model.Program, error) {
	return r.listWhere(ctx, "name ASC", "academy_id = ?", academyID)
}

// MBOConfigRepository mbo_configs data access, one row per program.
type MBOConfigRepository interface {
	CRUD[model.MBOConfig]
	GetByProgram(ctx context.Context, programID string) (*model.MBOConfig, error)
}

type mboConfigRepo struct {
	table[model.MBOConfig]
}

func NewMBOConfigRepo(db *gorm.DB) MBOConfigRepository {
	return &mboConfigRepo{table[model.MBOConfig]{db: db, idColumn: "mbo_config_id"}}
}

func (r *mboConfigRepo) GetByProgram(ctx context.Context, programID string) (*model.MBOConfig, error) {
	var cfg model.MBOConfig
	err := r.db.WithContext(ctx).
		Preload("Kerntaken", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Kerntaken.Werkprocessen", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Keuzedelen", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("program_id = ?", programID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HBOConfigRepository hbo_configs data access, one row per program.
type HBOConfigRepository interface {
	CRUD[model.HBOConfig]
	GetByProgram(ctx context.Context, programID string) (*model.HBOConfig, error)
}

type hboConfigRepo struct {
	table[model.HBOConfig]
}

func NewHBOConfigRepo(db *gorm.DB) HBOConfigRepository {
	return &hboConfigRepo{table[model.HBOConfig]{db: db, idColumn: "hbo_config_id"}}
}

func (r *hboConfigRepo) GetByProgram(ctx context.Context, programID string) (*model.HBOConfig, error) {
	var cfg model.HBOConfig
	err := r.db.WithContext(ctx).Where("program_id = ?", programID).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// KerntaakRepository kerntaken data access, ordered within an MBO config.
type KerntaakRepository interface {
	CRUD[model.Kerntaak]
	Siblings
	ListByConfig(ctx context.Context, mboConfigID string) ([]model.Kerntaak, error)
}

type kerntaakRepo struct {
	table[model.Kerntaak]
	siblings
}

func NewKerntaakRepo(db *gorm.DB) KerntaakRepository {
	return &kerntaakRepo{
		table:    table[model.Kerntaak]{db: db, idColumn: "kerntaak_id"},
		siblings: siblings{db: db, table: "kerntaken", idColumn: "kerntaak_id", parentColumn: "mbo_config_id"},
	}
}

func (r *kerntaakRepo) ListByConfig(ctx context.Context, mboConfigID string) ([]model.Kerntaak, error) {
	return r.listWhere(ctx, "sort_order ASC", "mbo_config_id = ?", mboConfigID)
}

// WerkprocesRepository werkprocessen data access, ordered within a kerntaak.
type WerkprocesRepository interface {
	CRUD[model.Werkproces]
	Siblings
	ListByKerntaak(ctx context.Context, kerntaakID string) ([]model.Werkproces, error)
}

type werkprocesRepo struct {
	table[model.Werkproces]
	siblings
}

func NewWerkprocesRepo(db *gorm.DB) WerkprocesRepository {
	return &werkprocesRepo{
		table:    table[model.Werkproces]{db: db, idColumn: "werkproces_id"},
		siblings: siblings{db: db, table: "werkprocessen", idColumn: "werkproces_id", parentColumn: "kerntaak_id"},
	}
}

func (r *werkprocesRepo) ListByKerntaak(ctx context.Context, kerntaakID string) ([]model.Werkproces, error) {
	return r.listWhere(ctx, "sort_order ASC", "kerntaak_id = ?", kerntaakID)
}

// KeuzedeelRepository keuzedelen data access, ordered within an MBO config.
type KeuzedeelRepository interface {
	CRUD[model.Keuzedeel]
	Siblings
	ListByConfig(ctx context.Context, mboConfigID string) ([]model.Keuzedeel, error)
}

type keuzedeelRepo struct {
	table[model.Keuzedeel]
	siblings
}

func NewKeuzedeelRepo(db *gorm.DB) KeuzedeelRepository {
	return &keuzedeelRepo{
		table:    table[model.Keuzedeel]{db: db, idColumn: "keuzedeel_id"},
		siblings: siblings{db: db, table: "keuzedelen", idColumn: "keuzedeel_id", parentColumn: "mbo_config_id"},
	}
}

func (r *keuzedeelRepo) ListByConfig(ctx context.Context, mboConfigID string) ([]model.Keuzedeel, error) {
	return r.listWhere(ctx, "sort_order ASC", "mbo_config_id = ?", mboConfigID)
}
