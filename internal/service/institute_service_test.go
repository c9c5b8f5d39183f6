package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
)

func setupTestInstituteService() (InstituteService, *memStore) {
	store := newMemStore()
	return NewInstituteService(store.repo, zap.NewNop()), store
}

func TestInstituteService_Create(t *testing.T) {
	svc, _ := setupTestInstituteService()
	ctx := context.Background()

	inst, err := svc.Create(ctx, &dto.CreateInstituteRequest{
		Name:        "Hogeschool Utrecht",
		ShortCode:   "HU",
		BrandColors: &dto.BrandColorsInput{Primary: "#E30613"},
	}, "u")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inst.BrandColors.Data().Primary != "#E30613" {
		t.Errorf("brand colours not stored: %+v", inst.BrandColors.Data())
	}

	got, err := svc.GetByID(ctx, inst.InstituteID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Hogeschool Utrecht" || got.ShortCode != "HU" {
		t.Errorf("unexpected institute %+v", got)
	}
}

func TestInstituteService_Create_DuplicateShortCode(t *testing.T) {
	svc, _ := setupTestInstituteService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateInstituteRequest{Name: "A", ShortCode: "HU"}, "u"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, &dto.CreateInstituteRequest{Name: "B", ShortCode: "HU"}, "u")
	if !errors.Is(err, ErrInstituteCodeExists) {
		t.Fatalf("expected ErrInstituteCodeExists, got %v", err)
	}
	if pkgerrors.KindOf(err) != pkgerrors.KindConstraint {
		t.Errorf("expected kind Constraint, got %v", pkgerrors.KindOf(err))
	}
}

func TestInstituteService_Create_InvalidBrandColor(t *testing.T) {
	svc, _ := setupTestInstituteService()

	_, err := svc.Create(context.Background(), &dto.CreateInstituteRequest{
		Name:        "A",
		ShortCode:   "A",
		BrandColors: &dto.BrandColorsInput{Primary: "red"},
	}, "u")
	e, ok := pkgerrors.As(err)
	if !ok || e.Kind != pkgerrors.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestInstituteService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestInstituteService()

	_, err := svc.Update(context.Background(), "missing", &dto.UpdateInstituteRequest{Name: strPtr("x")}, "u")
	if !errors.Is(err, ErrInstituteNotFound) {
		t.Errorf("expected ErrInstituteNotFound, got %v", err)
	}
}

func TestInstituteService_Academies(t *testing.T) {
	svc, _ := setupTestInstituteService()
	ctx := context.Background()
	a, _ := svc.Create(ctx, &dto.CreateInstituteRequest{Name: "A", ShortCode: "A"}, "u")
	b, _ := svc.Create(ctx, &dto.CreateInstituteRequest{Name: "B", ShortCode: "B"}, "u")

	if _, err := svc.CreateAcademy(ctx, a.InstituteID, &dto.CreateAcademyRequest{Name: "ICT", Code: "ICT"}, "u"); err != nil {
		t.Fatalf("CreateAcademy: %v", err)
	}
	if _, err := svc.CreateAcademy(ctx, a.InstituteID, &dto.CreateAcademyRequest{Name: "Other", Code: "ICT"}, "u"); !errors.Is(err, ErrAcademyCodeExists) {
		t.Errorf("expected ErrAcademyCodeExists, got %v", err)
	}
	// the code is unique within one institute only
	if _, err := svc.CreateAcademy(ctx, b.InstituteID, &dto.CreateAcademyRequest{Name: "ICT", Code: "ICT"}, "u"); err != nil {
		t.Errorf("same code in another institute: %v", err)
	}
	if _, err := svc.CreateAcademy(ctx, "missing", &dto.CreateAcademyRequest{Name: "x", Code: "x"}, "u"); !errors.Is(err, ErrInstituteNotFound) {
		t.Errorf("expected ErrInstituteNotFound, got %v", err)
	}

	list, err := svc.ListAcademies(ctx, a.InstituteID)
	if err != nil || len(list) != 1 {
		t.Errorf("ListAcademies: %v %+v", err, list)
	}
}
