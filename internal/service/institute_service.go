package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/validate"
)

var (
	ErrInstituteNotFound   = pkgerrors.NotFound("institute not found")
	ErrInstituteCodeExists = pkgerrors.Constraint("uq_institutes_short_code", "institute short code already in use")
	ErrAcademyNotFound     = pkgerrors.NotFound("academy not found")
	ErrAcademyCodeExists   = pkgerrors.Constraint("uq_academies_institute_code", "academy code already in use within the institute")
)

// InstituteService manages institutes and their academies.
type InstituteService interface {
	Create(ctx context.Context, req *dto.CreateInstituteRequest, callerID string) (*model.Institute, error)
	GetByID(ctx context.Context, id string) (*model.Institute, error)
	List(ctx context.Context) ([]model.Institute, error)
	Update(ctx context.Context, id string, req *dto.UpdateInstituteRequest, callerID string) (*model.Institute, error)
	Delete(ctx context.Context, id string) error

	CreateAcademy(ctx context.Context, instituteID string, req *dto.CreateAcademyRequest, callerID string) (*model.Academy, error)
	GetAcademy(ctx context.Context, id string) (*model.Academy, error)
	ListAcademies(ctx context.Context, instituteID string) ([]model.Academy, error)
	UpdateAcademy(ctx context.Context, id string, req *dto.UpdateAcademyRequest, callerID string) (*model.Academy, error)
	DeleteAcademy(ctx context.Context, id string) error
}

type instituteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewInstituteService(repo *repository.Repository, logger *zap.Logger) InstituteService {
	return &instituteService{repo: repo, logger: logger}
}

// ────────────────────── institutes ──────────────────────

func (s *instituteService) Create(ctx context.Context, req *dto.CreateInstituteRequest, callerID string) (*model.Institute, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	inst := &model.Institute{
		Name:        req.Name,
		ShortCode:   req.ShortCode,
		BrandColors: datatypes.NewJSONType(brandColors(req.BrandColors)),
	}
	inst.Stamp(callerID)

	if err := s.repo.Institute.Create(ctx, inst); err != nil {
		return nil, logInternal(s.logger, "create institute failed", instituteErr(err))
	}
	return inst, nil
}

func (s *instituteService) GetByID(ctx context.Context, id string) (*model.Institute, error) {
	inst, err := s.repo.Institute.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get institute failed", storeErr(err, ErrInstituteNotFound), zap.String("id", id))
	}
	return inst, nil
}

func (s *instituteService) List(ctx context.Context) ([]model.Institute, error) {
	list, err := s.repo.Institute.List(ctx)
	if err != nil {
		return nil, logInternal(s.logger, "list institutes failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *instituteService) Update(ctx context.Context, id string, req *dto.UpdateInstituteRequest, callerID string) (*model.Institute, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	inst, err := s.repo.Institute.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrInstituteNotFound)
	}
	if req.Name != nil {
		inst.Name = *req.Name
	}
	if req.ShortCode != nil {
		inst.ShortCode = *req.ShortCode
	}
	if req.BrandColors != nil {
		inst.BrandColors = datatypes.NewJSONType(brandColors(req.BrandColors))
	}
	inst.Touch(callerID)

	if err := s.repo.Institute.Update(ctx, inst); err != nil {
		return nil, logInternal(s.logger, "update institute failed", instituteErr(err), zap.String("id", id))
	}
	return inst, nil
}

// Delete removes the institute together with everything it owns.
func (s *instituteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Institute.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete institute failed", storeErr(err, ErrInstituteNotFound), zap.String("id", id))
	}
	return nil
}

// ────────────────────── academies ──────────────────────

func (s *instituteService) CreateAcademy(ctx context.Context, instituteID string, req *dto.CreateAcademyRequest, callerID string) (*model.Academy, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Institute.GetByID(ctx, instituteID); err != nil {
		return nil, storeErr(err, ErrInstituteNotFound)
	}

	academy := &model.Academy{InstituteID: instituteID, Name: req.Name, Code: req.Code}
	academy.Stamp(callerID)

	if err := s.repo.Academy.Create(ctx, academy); err != nil {
		return nil, logInternal(s.logger, "create academy failed", academyErr(err))
	}
	return academy, nil
}

func (s *instituteService) GetAcademy(ctx context.Context, id string) (*model.Academy, error) {
	academy, err := s.repo.Academy.GetByID(ctx, id)
	if err != nil {
		return nil, logInternal(s.logger, "get academy failed", storeErr(err, ErrAcademyNotFound), zap.String("id", id))
	}
	return academy, nil
}

func (s *instituteService) ListAcademies(ctx context.Context, instituteID string) ([]model.Academy, error) {
	if _, err := s.repo.Institute.GetByID(ctx, instituteID); err != nil {
		return nil, storeErr(err, ErrInstituteNotFound)
	}
	list, err := s.repo.Academy.ListByInstitute(ctx, instituteID)
	if err != nil {
		return nil, logInternal(s.logger, "list academies failed", pkgerrors.FromStore(err))
	}
	return list, nil
}

func (s *instituteService) UpdateAcademy(ctx context.Context, id string, req *dto.UpdateAcademyRequest, callerID string) (*model.Academy, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	academy, err := s.repo.Academy.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAcademyNotFound)
	}
	if req.Name != nil {
		academy.Name = *req.Name
	}
	if req.Code != nil {
		academy.Code = *req.Code
	}
	academy.Touch(callerID)

	if err := s.repo.Academy.Update(ctx, academy); err != nil {
		return nil, logInternal(s.logger, "update academy failed", academyErr(err), zap.String("id", id))
	}
	return academy, nil
}

func (s *instituteService) DeleteAcademy(ctx context.Context, id string) error {
	if err := s.repo.Academy.Delete(ctx, id); err != nil {
		return logInternal(s.logger, "delete academy failed", storeErr(err, ErrAcademyNotFound), zap.String("id", id))
	}
	return nil
}

// ── helpers ──

func brandColors(in *dto.BrandColorsInput) model.BrandColors {
	if in == nil {
		return model.BrandColors{}
	}
	return model.BrandColors{Primary: in.Primary, Secondary: in.Secondary, Accent: in.Accent}
}

func instituteErr(err error) error {
	err = pkgerrors.FromStore(err)
	if pkgerrors.IsConstraint(err, ErrInstituteCodeExists.Constraint) {
		return ErrInstituteCodeExists
	}
	return err
}

func academyErr(err error) error {
	err = pkgerrors.FromStore(err)
	switch {
	case pkgerrors.IsConstraint(err, ErrAcademyCodeExists.Constraint):
		return ErrAcademyCodeExists
	case pkgerrors.KindOf(err) == pkgerrors.KindConstraint:
		// academies.institute_id foreign key
		return ErrInstituteNotFound
	}
	return err
}
