package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/validate"
)

var (
	ErrProgramNotFound    = pkgerrors.NotFound("program not found")
	ErrConfigTypeMismatch = pkgerrors.InvalidArgument("configuration does not match the program's education type")
	ErrMBOConfigNotFound  = pkgerrors.NotFound("mbo configuration not found")
	ErrHBOConfigNotFound  = pkgerrors.NotFound("hbo configuration not found")
	ErrKerntaakNotFound   = pkgerrors.NotFound("kerntaak not found")
	ErrWerkprocesNotFound = pkgerrors.NotFound("werkproces not found")
	ErrKeuzedeelNotFound  = pkgerrors.NotFound("keuzedeel not found")
)

// ProgramService manages programs and their MBO / HBO specific configuration.
type ProgramService interface {
	Create(ctx context.Context, academyID string, req *dto.CreateProgramRequest, callerID string) (*model.Program, error)
	// GetByID returns the program with the configuration matching its type.
	GetByID(ctx context.Context, id string) (*model.Program, error)
	ListByAcademy(ctx context.Context, academyID string) ([]model.Program, error)
	Update(ctx context.Context, id string, req *dto.UpdateProgramRequest, callerID string) (*model.Program, error)
	Delete(ctx context.Context, id string) error

	UpsertMBOConfig(ctx context.Context, programID string, req *dto.UpsertMBOConfigRequest, callerID string) (*model.MBOConfig, error)
	GetMBOConfig(ctx context.Context, programID string) (*model.MBOConfig, error)
	UpsertHBOConfig(ctx context.Context, programID string, req *dto.UpsertHBOConfigRequest, callerID string) (*model.HBOConfig, error)
	GetHBOConfig(ctx context.Context, programID string) (*model.HBOConfig, error)

	CreateKerntaak(ctx context.Context, programID string, req *dto.CreateKerntaakRequest, callerID string) (*model.Kerntaak, error)
	UpdateKerntaak(ctx context.Context, id string, req *dto.UpdateKerntaakRequest, callerID string) (*model.Kerntaak, error)
	DeleteKerntaak(ctx context.Context, id string) error
	CreateWerkproces(ctx context.Context, kerntaakID string, req *dto.CreateWerkprocesRequest, callerID string) (*model.Werkproces, error)
	UpdateWerkproces(ctx context.Context, id string, req *dto.UpdateWerkprocesRequest, callerID string) (*model.Werkproces, error)
	DeleteWerkproces(ctx context.Context, id string) error
	CreateKeuzedeel(ctx context.Context, programID string, req *dto.CreateKeuzedeelRequest, callerID string) (*model.Keuzedeel, error)
	UpdateKeuzedeel(ctx context.Context, id string, req *dto.UpdateKeuzedeelRequest, callerID string) (*model.Keuzedeel, error)
	DeleteKeuzedeel(ctx context.Context, id string) error
}

type programService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewProgramService(repo *repository.Repository, logger *zap.Logger) ProgramService {
	return &programService{repo: repo, logger: logger}
}

// ────────────────────── programs ──────────────────────

func (s *programService) Create(ctx context.Context, academyID string, req *dto.CreateProgramRequest, callerID string) (*model.Program, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Academy.GetByID(ctx, academyID); err != nil {
		return nil, storeErr(err, ErrAcademyNotFound)
	}

	program := &model.Program{
		AcademyID:     academyID,
		Name:          req.Name,
		Code:          req.Code,
		CreboCode:     req.CreboCode,
		EducationType: model.EducationType(req.EducationType),
		DegreeType:    req.DegreeType,
		DurationYears: req.DurationYears,
		TotalCredits:  req.TotalCredits,
	}
	program.Stamp(callerID)

	if err := s.repo.Program.Create(ctx, program); err != nil {
		return nil, logInternal(s.logger, "create program failed", pkgerrors.FromStore(err))
	}
	return program, nil
}

func (s *programService) GetByID(ctx context.Context, id string) (*model.Program, error) {
	program, err := s.repo.Program.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get program failed", storeErr(err, ErrProgramNotFound), zap.String("id", id))
	}

	switch program.EducationType {
	case model.EducationMBO:
		cfg, err := s.repo.MBOConfig.GetByProgram(ctx, id)
		if err = storeErr(err, nil); err != nil {
			return nil, logInternal(s.logger, "get mbo config failed", err, zap.String("program_id", id))
		}
		program.MBOConfig = cfg
	case model.EducationHBO:
		cfg, err := s.repo.HBOConfig.GetByProgram(ctx, id)
		if err = storeErr(err, nil); err != nil {
			return nil, logInternal(s.logger, "get hbo config failed", err, zap.String("program_id", id))
		}
		program.HBOConfig = cfg
	}
	return program, nil
}

func (s *programService) ListByAcademy(ctx context.Context, academyID string) ([]model.Program, error) {
	if _, err := s.repo.Academy.GetByID(ctx, academyID); err != nil {
		return nil, storeErr(err, ErrAcademyNotFound)
	}
	list, err := s.repo.Program.ListByAcademy(ctx, academyID)
	if err != nil {
		return nil, logInternal(s.logger, "list programs failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *programService) Update(ctx context.Context, id string, req *dto.UpdateProgramRequest, callerID string) (*model.Program, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	program, err := s.repo.Program.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrProgramNotFound)
	}
	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Code != nil {
		program.Code = *req.Code
	}
	if req.CreboCode != nil {
		program.CreboCode = req.CreboCode
	}
	if req.DegreeType != nil {
		program.DegreeType = *req.DegreeType
	}
	if req.DurationYears != nil {
		program.DurationYears = *req.DurationYears
	}
	if req.TotalCredits != nil {
		program.TotalCredits = *req.TotalCredits
	}
	program.Touch(callerID)

	if err := s.repo.Program.Update(ctx, program); err != nil {
		return nil, logInternal(s.logger, "update program failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return program, nil
}

func (s *programService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Program.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete program failed", storeErr(err, ErrProgramNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── configuration ──────────────────────

// programOfType loads the program and rejects configuration of the other type.
func (s *programService) programOfType(ctx context.Context, repo *repository.Repository, programID string, want model.EducationType) (*model.Program, error) {
	program, err := repo.Program.GetByID(ctx, programID)
	if err != nil {
		return nil, storeErr(err, ErrProgramNotFound)
	}
	if program.EducationType != want {
		return nil, ErrConfigTypeMismatch
	}
	return program, nil
}

func (s *programService) UpsertMBOConfig(ctx context.Context, programID string, req *dto.UpsertMBOConfigRequest, callerID string) (*model.MBOConfig, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var dossierDate *datatypes.Date
	if req.DossierDate != nil {
		t, err := time.Parse(time.DateOnly, *req.DossierDate)
		if err != nil {
			return nil, pkgerrors.FieldError("dossier_date", "must be a date like 2006-01-02")
		}
		d := datatypes.Date(t)
		dossierDate = &d
	}

	var result *model.MBOConfig
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.programOfType(ctx, tx, programID, model.EducationMBO); err != nil {
			return err
		}

		cfg, err := tx.MBOConfig.GetByProgram(ctx, programID)
		if err = storeErr(err, nil); err != nil {
			return err
		}
		isNew := cfg == nil
		if isNew {
			cfg = &model.MBOConfig{ProgramID: programID}
			cfg.Stamp(callerID)
		} else {
			cfg.Touch(callerID)
		}
		cfg.Leerweg = model.Leerweg(req.Leerweg)
		cfg.Niveau = req.Niveau
		cfg.Ontwerpprincipe = req.Ontwerpprincipe
		cfg.DossierName = req.DossierName
		cfg.DossierVersion = req.DossierVersion
		cfg.DossierDate = dossierDate

		if isNew {
			err = tx.MBOConfig.Create(ctx, cfg)
		} else {
			err = tx.MBOConfig.Update(ctx, cfg)
		}
		if err != nil {
			return pkgerrors.FromStore(err)
		}
		result = cfg
		return nil
	})
	if err != nil {
		return nil, logInternal(s.logger, "upsert mbo config failed", err, zap.String("program_id", programID))
	}
	return result, nil
}

func (s *programService) GetMBOConfig(ctx context.Context, programID string) (*model.MBOConfig, error) {
	if _, err := s.programOfType(ctx, s.repo, programID, model.EducationMBO); err != nil {
		return nil, err
	}
	cfg, err := s.repo.MBOConfig.GetByProgram(ctx, programID)
	if err != nil {
		return nil, logInternal(s.logger, "get mbo config failed", storeErr(err, ErrMBOConfigNotFound))
	}
	return cfg, nil
}

func (s *programService) UpsertHBOConfig(ctx context.Context, programID string, req *dto.UpsertHBOConfigRequest, callerID string) (*model.HBOConfig, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var result *model.HBOConfig
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := s.programOfType(ctx, tx, programID, model.EducationHBO); err != nil {
			return err
		}

		cfg, err := tx.HBOConfig.GetByProgram(ctx, programID)
		if err = storeErr(err, nil); err != nil {
			return err
		}
		isNew := cfg == nil
		if isNew {
			cfg = &model.HBOConfig{ProgramID: programID}
			cfg.Stamp(callerID)
		} else {
			cfg.Touch(callerID)
		}
		cfg.Variant = model.HBOVariant(req.Variant)
		cfg.Toetsfilosofie = req.Toetsfilosofie
		cfg.Ordeningsprincipe = req.Ordeningsprincipe
		cfg.Tijdsnede = req.Tijdsnede

		if isNew {
			err = tx.HBOConfig.Create(ctx, cfg)
		} else {
			err = tx.HBOConfig.Update(ctx, cfg)
		}
		if err != nil {
			return pkgerrors.FromStore(err)
		}
		result = cfg
		return nil
	})
	if err != nil {
		return nil, logInternal(s.logger, "upsert hbo config failed", err, zap.String("program_id", programID))
	}
	return result, nil
}

func (s *programService) GetHBOConfig(ctx context.Context, programID string) (*model.HBOConfig, error) {
	if _, err := s.programOfType(ctx, s.repo, programID, model.EducationHBO); err != nil {
		return nil, err
	}
	cfg, err := s.repo.HBOConfig.GetByProgram(ctx, programID)
	if err != nil {
		return nil, logInternal(s.logger, "get hbo config failed", storeErr(err, ErrHBOConfigNotFound))
	}
	return cfg, nil
}

// ────────────────────── kerntaken / werkprocessen ──────────────────────

func (s *programService) mboConfigOf(ctx context.Context, programID string) (*model.MBOConfig, error) {
	if _, err := s.programOfType(ctx, s.repo, programID, model.EducationMBO); err != nil {
		return nil, err
	}
	cfg, err := s.repo.MBOConfig.GetByProgram(ctx, programID)
	if err != nil {
		return nil, storeErr(err, ErrMBOConfigNotFound)
	}
	return cfg, nil
}

func (s *programService) CreateKerntaak(ctx context.Context, programID string, req *dto.CreateKerntaakRequest, callerID string) (*model.Kerntaak, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	cfg, err := s.mboConfigOf(ctx, programID)
	if err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, s.repo.Kerntaak, cfg.MBOConfigID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	k := &model.Kerntaak{MBOConfigID: cfg.MBOConfigID, Code: req.Code, Title: req.Title, SortOrder: order}
	k.Stamp(callerID)
	if err := s.repo.Kerntaak.Create(ctx, k); err != nil {
		return nil, logInternal(s.logger, "create kerntaak failed", pkgerrors.FromStore(err))
	}
	return k, nil
}

func (s *programService) UpdateKerntaak(ctx context.Context, id string, req *dto.UpdateKerntaakRequest, callerID string) (*model.Kerntaak, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	k, err := s.repo.Kerntaak.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrKerntaakNotFound)
	}
	if req.Code != nil {
		k.Code = *req.Code
	}
	if req.Title != nil {
		k.Title = *req.Title
	}
	k.Touch(callerID)
	if err := s.repo.Kerntaak.Update(ctx, k); err != nil {
		return nil, logInternal(s.logger, "update kerntaak failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return k, nil
}

func (s *programService) DeleteKerntaak(ctx context.Context, id string) error {
	if err := s.repo.Kerntaak.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete kerntaak failed", storeErr(err, ErrKerntaakNotFound), zap.String("id", id))
	}
	return nil
}

func (s *programService) CreateWerkproces(ctx context.Context, kerntaakID string, req *dto.CreateWerkprocesRequest, callerID string) (*model.Werkproces, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Kerntaak.GetByID(ctx, kerntaakID); err != nil {
		return nil, storeErr(err, ErrKerntaakNotFound)
	}
	order, err := nextSortOrder(ctx, s.repo.Werkproces, kerntaakID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	w := &model.Werkproces{KerntaakID: kerntaakID, Code: req.Code, Title: req.Title, Description: req.Description, SortOrder: order}
	w.Stamp(callerID)
	if err := s.repo.Werkproces.Create(ctx, w); err != nil {
		return nil, logInternal(s.logger, "create werkproces failed", pkgerrors.FromStore(err))
	}
	return w, nil
}

func (s *programService) UpdateWerkproces(ctx context.Context, id string, req *dto.UpdateWerkprocesRequest, callerID string) (*model.Werkproces, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	w, err := s.repo.Werkproces.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrWerkprocesNotFound)
	}
	if req.Code != nil {
		w.Code = *req.Code
	}
	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Description != nil {
		w.Description = *req.Description
	}
	w.Touch(callerID)
	if err := s.repo.Werkproces.Update(ctx, w); err != nil {
		return nil, logInternal(s.logger, "update werkproces failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return w, nil
}

func (s *programService) DeleteWerkproces(ctx context.Context, id string) error {
	if err := s.repo.Werkproces.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete werkproces failed", storeErr(err, ErrWerkprocesNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── keuzedelen ──────────────────────

func (s *programService) CreateKeuzedeel(ctx context.Context, programID string, req *dto.CreateKeuzedeelRequest, callerID string) (*model.Keuzedeel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	cfg, err := s.mboConfigOf(ctx, programID)
	if err != nil {
		return nil, err
	}
	order, err := nextSortOrder(ctx, s.repo.Keuzedeel, cfg.MBOConfigID, req.SortOrder)
	if err != nil {
		return nil, logInternal(s.logger, "next sort order failed", pkgerrors.FromStore(err))
	}

	k := &model.Keuzedeel{MBOConfigID: cfg.MBOConfigID, Code: req.Code, Title: req.Title, SBU: req.SBU, SortOrder: order}
	k.Stamp(callerID)
	if err := s.repo.Keuzedeel.Create(ctx, k); err != nil {
		return nil, logInternal(s.logger, "create keuzedeel failed", pkgerrors.FromStore(err))
	}
	return k, nil
}

func (s *programService) UpdateKeuzedeel(ctx context.Context, id string, req *dto.UpdateKeuzedeelRequest, callerID string) (*model.Keuzedeel, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	k, err := s.repo.Keuzedeel.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrKeuzedeelNotFound)
	}
	if req.Code != nil {
		k.Code = *req.Code
	}
	if req.Title != nil {
		k.Title = *req.Title
	}
	if req.SBU != nil {
		k.SBU = *req.SBU
	}
	k.Touch(callerID)
	if err := s.repo.Keuzedeel.Update(ctx, k); err != nil {
		return nil, logInternal(s.logger, "update keuzedeel failed", pkgerrors.FromStore(err), zap.String("id", id))
	}
	return k, nil
}

func (s *programService) DeleteKeuzedeel(ctx context.Context, id string) error {
	if err := s.repo.Keuzedeel.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete keuzedeel failed", storeErr(err, ErrKeuzedeelNotFound), zap.String("id", id))
	}
	return nil
}
