package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
)

func setupTestCurriculumService() (CurriculumService, *memStore) {
	store := newMemStore()
	return NewCurriculumService(store.repo, zap.NewNop()), store
}

// seedCurriculum builds one cohort with two years and returns them.
func seedCurriculum(store *memStore) (model.Cohort, model.AcademicYear, model.AcademicYear) {
	program := store.seedProgram(model.EducationHBO, 2, 120)
	cohort := store.seedCohort(program.ProgramID, "2025")
	return cohort, store.seedYear(cohort.CohortID, 1), store.seedYear(cohort.CohortID, 2)
}

// ── credits ──

func TestCurriculumService_YearCredits(t *testing.T) {
	svc, store := setupTestCurriculumService()
	_, y1, y2 := seedCurriculum(store)
	store.seedBlock(y1.AcademicYearID, "B1", 15, 1)
	store.seedBlock(y1.AcademicYearID, "B2", 12.5, 2)
	store.seedBlock(y1.AcademicYearID, "B3", 0, 3)

	got, err := svc.YearCredits(context.Background(), y1.AcademicYearID)
	if err != nil {
		t.Fatalf("YearCredits: %v", err)
	}
	if got != 27.5 {
		t.Errorf("expected 27.5, got %v", got)
	}

	empty, err := svc.YearCredits(context.Background(), y2.AcademicYearID)
	if err != nil {
		t.Fatalf("YearCredits on empty year: %v", err)
	}
	if empty != 0 {
		t.Errorf("a year without blocks has 0 credits, got %v", empty)
	}
}

func TestCurriculumService_YearCredits_NotFound(t *testing.T) {
	svc, _ := setupTestCurriculumService()

	_, err := svc.YearCredits(context.Background(), "missing")
	if !errors.Is(err, ErrAcademicYearNotFound) {
		t.Errorf("expected ErrAcademicYearNotFound, got %v", err)
	}
}

func TestCurriculumService_CohortCreditsIsSumOfYears(t *testing.T) {
	svc, store := setupTestCurriculumService()
	cohort, y1, y2 := seedCurriculum(store)
	store.seedBlock(y1.AcademicYearID, "B1", 30, 1)
	store.seedBlock(y1.AcademicYearID, "B2", 30, 2)
	store.seedBlock(y2.AcademicYearID, "B3", 20, 1)

	other := store.seedCohort(cohort.ProgramID, "2026")
	oy := store.seedYear(other.CohortID, 1)
	store.seedBlock(oy.AcademicYearID, "X", 99, 1)

	ctx := context.Background()
	total, err := svc.CohortCredits(ctx, cohort.CohortID)
	if err != nil {
		t.Fatalf("CohortCredits: %v", err)
	}
	c1, _ := svc.YearCredits(ctx, y1.AcademicYearID)
	c2, _ := svc.YearCredits(ctx, y2.AcademicYearID)
	if total != c1+c2 || total != 80 {
		t.Errorf("expected 80 = %v + %v, got %v", c1, c2, total)
	}
}

// ── blocks ──

func TestCurriculumService_CreateBlock_Defaults(t *testing.T) {
	svc, store := setupTestCurriculumService()
	_, y1, _ := seedCurriculum(store)
	ctx := context.Background()

	first, err := svc.CreateBlock(ctx, y1.AcademicYearID, &dto.CreateBlockRequest{Code: "B1", Name: "Oriëntatie", Credits: 15}, "u")
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}
	if first.Type != model.BlockEducational || first.DurationWeeks != 10 || first.Status != model.StatusDraft || first.Color != defaultBlockColor {
		t.Errorf("unexpected defaults: %+v", first)
	}
	if first.SortOrder != 1 {
		t.Errorf("first block should get sort_order 1, got %d", first.SortOrder)
	}

	second, err := svc.CreateBlock(ctx, y1.AcademicYearID, &dto.CreateBlockRequest{Code: "B2", Name: "Verdieping", Type: "project", Color: "#112233"}, "u")
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}
	if second.SortOrder != 2 || second.Type != model.BlockProject || second.Color != "#112233" {
		t.Errorf("unexpected block: %+v", second)
	}
}

func TestCurriculumService_CreateBlock_Invalid(t *testing.T) {
	svc, store := setupTestCurriculumService()
	_, y1, _ := seedCurriculum(store)

	_, err := svc.CreateBlock(context.Background(), y1.AcademicYearID, &dto.CreateBlockRequest{Code: " ", Name: "X", Color: "blue", Credits: -1}, "u")
	e, ok := pkgerrors.As(err)
	if !ok || e.Kind != pkgerrors.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
	for _, field := range []string{"code", "color", "credits"} {
		if _, ok := e.Fields[field]; !ok {
			t.Errorf("expected a %s field error, got %v", field, e.Fields)
		}
	}
}

func TestCurriculumService_CreateBlock_UnknownYear(t *testing.T) {
	svc, _ := setupTestCurriculumService()

	_, err := svc.CreateBlock(context.Background(), "missing", &dto.CreateBlockRequest{Code: "B1", Name: "X"}, "u")
	if !errors.Is(err, ErrAcademicYearNotFound) {
		t.Errorf("expected ErrAcademicYearNotFound, got %v", err)
	}
}

// ── reorder ──

func TestCurriculumService_ReorderBlocks(t *testing.T) {
	svc, store := setupTestCurriculumService()
	_, y1, y2 := seedCurriculum(store)
	a := store.seedBlock(y1.AcademicYearID, "A", 0, 1)
	b := store.seedBlock(y1.AcademicYearID, "B", 0, 2)
	c := store.seedBlock(y1.AcademicYearID, "C", 0, 3)
	outside := store.seedBlock(y2.AcademicYearID, "Z", 0, 7)

	err := svc.ReorderBlocks(context.Background(), y1.AcademicYearID, &dto.ReorderRequest{IDs: []string{c.BlockID, a.BlockID, b.BlockID}})
	if err != nil {
		t.Fatalf("ReorderBlocks: %v", err)
	}

	want := map[string]int{c.BlockID: 1, a.BlockID: 2, b.BlockID: 3}
	for id, order := range want {
		if got := store.blocks.rows[id].SortOrder; got != order {
			t.Errorf("block %s: expected sort_order %d, got %d", store.blocks.rows[id].Code, order, got)
		}
	}
	if store.blocks.rows[outside.BlockID].SortOrder != 7 {
		t.Error("blocks of another year must not be touched")
	}
}

func TestCurriculumService_ReorderBlocks_Mismatch(t *testing.T) {
	svc, store := setupTestCurriculumService()
	_, y1, y2 := seedCurriculum(store)
	a := store.seedBlock(y1.AcademicYearID, "A", 0, 1)
	b := store.seedBlock(y1.AcademicYearID, "B", 0, 2)
	foreign := store.seedBlock(y2.AcademicYearID, "Z", 0, 1)

	cases := map[string][]string{
		"omission":  {a.BlockID},
		"duplicate": {a.BlockID, a.BlockID},
		"extra":     {a.BlockID, b.BlockID, uuid.NewString()},
		"foreign":   {a.BlockID, foreign.BlockID},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			err := svc.ReorderBlocks(context.Background(), y1.AcademicYearID, &dto.ReorderRequest{IDs: ids})
			if !errors.Is(err, ErrReorderMismatch) {
				t.Fatalf("expected ErrReorderMismatch, got %v", err)
			}
			if store.blocks.rows[a.BlockID].SortOrder != 1 || store.blocks.rows[b.BlockID].SortOrder != 2 {
				t.Error("a rejected reorder must not write")
			}
		})
	}
}

func TestCurriculumService_ReorderBlocks_AtomicOnFailure(t *testing.T) {
	svc, store := setupTestCurriculumService()
	_, y1, _ := seedCurriculum(store)
	a := store.seedBlock(y1.AcademicYearID, "A", 0, 1)
	b := store.seedBlock(y1.AcademicYearID, "B", 0, 2)
	c := store.seedBlock(y1.AcademicYearID, "C", 0, 3)
	store.blockSiblings.failAfter = 2

	err := svc.ReorderBlocks(context.Background(), y1.AcademicYearID, &dto.ReorderRequest{IDs: []string{c.BlockID, b.BlockID, a.BlockID}})
	if err == nil {
		t.Fatal("expected the injected failure")
	}
	if pkgerrors.KindOf(err) != pkgerrors.KindInternal {
		t.Errorf("a store failure is internal, got %v", pkgerrors.KindOf(err))
	}
	for id, order := range map[string]int{a.BlockID: 1, b.BlockID: 2, c.BlockID: 3} {
		if got := store.blocks.rows[id].SortOrder; got != order {
			t.Errorf("block %s: partial write left sort_order %d, want %d", store.blocks.rows[id].Code, got, order)
		}
	}
}

// ── vision relations ──

func TestCurriculumService_SetVisionRelations(t *testing.T) {
	svc, store := setupTestCurriculumService()
	cohort, y1, _ := seedCurriculum(store)
	block := store.seedBlock(y1.AcademicYearID, "B1", 15, 1)
	learning := store.visions.put(model.Vision{CohortID: cohort.CohortID, Type: model.VisionLearning, Title: "Leren"})
	profession := store.visions.put(model.Vision{CohortID: cohort.CohortID, Type: model.VisionProfession, Title: "Beroep"})
	ctx := context.Background()

	rels, err := svc.SetVisionRelations(ctx, block.BlockID, &dto.SetBlockVisionRelationsRequest{Relations: []dto.BlockVisionRelationInput{
		{VisionID: learning.VisionID, Strength: "strong"},
		{VisionID: profession.VisionID},
	}})
	if err != nil {
		t.Fatalf("SetVisionRelations: %v", err)
	}
	if len(rels) != 2 || rels[1].Strength != model.StrengthModerate {
		t.Errorf("unexpected relations %+v", rels)
	}

	// replacing drops the previous set
	if _, err := svc.SetVisionRelations(ctx, block.BlockID, &dto.SetBlockVisionRelationsRequest{Relations: []dto.BlockVisionRelationInput{
		{VisionID: profession.VisionID, Strength: "weak"},
	}}); err != nil {
		t.Fatalf("SetVisionRelations replace: %v", err)
	}
	stored, _ := svc.ListVisionRelations(ctx, block.BlockID)
	if len(stored) != 1 || stored[0].VisionID != profession.VisionID || stored[0].Strength != model.StrengthWeak {
		t.Errorf("expected only the weak profession relation, got %+v", stored)
	}
}

func TestCurriculumService_SetVisionRelations_VisionOfOtherCohort(t *testing.T) {
	svc, store := setupTestCurriculumService()
	cohort, y1, _ := seedCurriculum(store)
	block := store.seedBlock(y1.AcademicYearID, "B1", 15, 1)
	own := store.visions.put(model.Vision{CohortID: cohort.CohortID, Type: model.VisionLearning})
	other := store.seedCohort(cohort.ProgramID, "2026")
	foreign := store.visions.put(model.Vision{CohortID: other.CohortID, Type: model.VisionLearning})
	store.blockVisions.put(model.BlockVisionRelation{BlockID: block.BlockID, VisionID: own.VisionID, Strength: model.StrengthStrong})

	_, err := svc.SetVisionRelations(context.Background(), block.BlockID, &dto.SetBlockVisionRelationsRequest{Relations: []dto.BlockVisionRelationInput{
		{VisionID: foreign.VisionID},
	}})
	if !errors.Is(err, ErrVisionNotFound) {
		t.Fatalf("expected ErrVisionNotFound, got %v", err)
	}
	if len(store.blockVisions.rows) != 1 {
		t.Error("the existing relation must survive a rejected replace")
	}
}

func TestCurriculumService_SetVisionRelations_Duplicate(t *testing.T) {
	svc, store := setupTestCurriculumService()
	cohort, y1, _ := seedCurriculum(store)
	block := store.seedBlock(y1.AcademicYearID, "B1", 15, 1)
	v := store.visions.put(model.Vision{CohortID: cohort.CohortID, Type: model.VisionLearning})

	_, err := svc.SetVisionRelations(context.Background(), block.BlockID, &dto.SetBlockVisionRelationsRequest{Relations: []dto.BlockVisionRelationInput{
		{VisionID: v.VisionID}, {VisionID: v.VisionID},
	}})
	if e, ok := pkgerrors.As(err); !ok || e.Fields["relations"] == "" {
		t.Errorf("expected a relations field error, got %v", err)
	}
}

func TestCurriculumService_SetVisionRelations_RollsBackOnFailure(t *testing.T) {
	svc, store := setupTestCurriculumService()
	cohort, y1, _ := seedCurriculum(store)
	block := store.seedBlock(y1.AcademicYearID, "B1", 15, 1)
	v := store.visions.put(model.Vision{CohortID: cohort.CohortID, Type: model.VisionLearning})
	store.blockVisions.put(model.BlockVisionRelation{BlockID: block.BlockID, VisionID: v.VisionID, Strength: model.StrengthStrong})
	store.repo.Link.(*memLinkRepo).failReplace = true

	_, err := svc.SetVisionRelations(context.Background(), block.BlockID, &dto.SetBlockVisionRelationsRequest{})
	if err == nil {
		t.Fatal("expected the injected failure")
	}
	if len(store.blockVisions.rows) != 1 {
		t.Error("the delete half of a failed replace must be rolled back")
	}
}

// ── years ──

func TestCurriculumService_CreateYear(t *testing.T) {
	svc, store := setupTestCurriculumService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	cohort := store.seedCohort(program.ProgramID, "2025")

	y, err := svc.CreateYear(context.Background(), cohort.CohortID, &dto.CreateAcademicYearRequest{YearNumber: 2, Name: "Hoofdfase 1"}, "u")
	if err != nil {
		t.Fatalf("CreateYear: %v", err)
	}
	if y.TargetCredits != DefaultTargetCredits || y.SortOrder != 2 {
		t.Errorf("unexpected year %+v", y)
	}

	y, err = svc.UpdateYear(context.Background(), y.AcademicYearID, &dto.UpdateAcademicYearRequest{TargetCredits: floatPtr(45)}, "u")
	if err != nil {
		t.Fatalf("UpdateYear: %v", err)
	}
	if y.TargetCredits != 45 || y.Name != "Hoofdfase 1" {
		t.Errorf("partial update lost fields: %+v", y)
	}
}
