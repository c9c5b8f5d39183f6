package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
)

// ── helpers ──

func setupTestCohortService() (CohortService, *memStore) {
	store := newMemStore()
	return NewCohortService(store.repo, zap.NewNop()), store
}

func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// ── Create ──

func TestCohortService_Create_RoundTrip(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)

	req := &dto.CreateCohortRequest{Name: "Cohort 2025", StartYear: 2025, EndYear: 2029}
	created, err := svc.Create(context.Background(), program.ProgramID, req, "user-1")
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.CohortID)
	if err != nil {
		t.Fatalf("GetByID should succeed: %v", err)
	}
	if got.Name != "Cohort 2025" || got.StartYear != 2025 || got.EndYear != 2029 {
		t.Errorf("round trip changed fields: %+v", got)
	}
	if got.ProgramID != program.ProgramID {
		t.Errorf("expected program %s, got %s", program.ProgramID, got.ProgramID)
	}
	if got.Status != model.CohortDraft {
		t.Errorf("expected default status draft, got %s", got.Status)
	}
	if got.IsActive {
		t.Error("a new cohort must not be active unless asked")
	}
	if got.CreatedBy == nil || *got.CreatedBy != "user-1" {
		t.Errorf("expected created_by user-1, got %v", got.CreatedBy)
	}
}

func TestCohortService_Create_EndBeforeStart(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)

	req := &dto.CreateCohortRequest{Name: "Cohort", StartYear: 2025, EndYear: 2025}
	_, err := svc.Create(context.Background(), program.ProgramID, req, "user-1")

	e, ok := pkgerrors.As(err)
	if !ok || e.Kind != pkgerrors.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if _, ok := e.Fields["end_year"]; !ok {
		t.Errorf("expected an end_year field error, got %v", e.Fields)
	}
	if len(store.cohorts.rows) != 0 {
		t.Error("an invalid cohort must not be stored")
	}
}

func TestCohortService_Create_UnknownProgram(t *testing.T) {
	svc, _ := setupTestCohortService()

	req := &dto.CreateCohortRequest{Name: "Cohort", StartYear: 2025, EndYear: 2029}
	_, err := svc.Create(context.Background(), "missing", req, "user-1")
	if !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("expected ErrProgramNotFound, got %v", err)
	}
}

func TestCohortService_Create_ActiveClearsOthers(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	ctx := context.Background()

	first, err := svc.Create(ctx, program.ProgramID, &dto.CreateCohortRequest{Name: "A", StartYear: 2024, EndYear: 2028, IsActive: true}, "u")
	if err != nil {
		t.Fatalf("Create A: %v", err)
	}
	second, err := svc.Create(ctx, program.ProgramID, &dto.CreateCohortRequest{Name: "B", StartYear: 2025, EndYear: 2029, IsActive: true}, "u")
	if err != nil {
		t.Fatalf("Create B: %v", err)
	}

	active := store.repo.Cohort.(*memCohortRepo).active(program.ProgramID)
	if len(active) != 1 || active[0].CohortID != second.CohortID {
		t.Fatalf("expected only %s active, got %+v", second.CohortID, active)
	}
	if store.cohorts.rows[first.CohortID].IsActive {
		t.Error("the first cohort should have been deactivated")
	}
}

// ── Activate ──

func TestCohortService_Activate_ExactlyOnePerProgram(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	other := store.seedProgram(model.EducationMBO, 3, 0)
	ctx := context.Background()

	a := store.seedCohort(program.ProgramID, "A")
	b := store.seedCohort(program.ProgramID, "B")
	c := store.seedCohort(program.ProgramID, "C")
	foreign := store.seedCohort(other.ProgramID, "X")

	if _, err := svc.Activate(ctx, foreign.CohortID, "u"); err != nil {
		t.Fatalf("Activate foreign: %v", err)
	}
	for _, id := range []string{a.CohortID, c.CohortID, b.CohortID} {
		got, err := svc.Activate(ctx, id, "u")
		if err != nil {
			t.Fatalf("Activate %s: %v", id, err)
		}
		if !got.IsActive {
			t.Errorf("Activate should return the cohort as active")
		}
	}

	active := store.repo.Cohort.(*memCohortRepo).active(program.ProgramID)
	if len(active) != 1 || active[0].CohortID != b.CohortID {
		t.Fatalf("expected exactly B active, got %+v", active)
	}
	if !store.cohorts.rows[foreign.CohortID].IsActive {
		t.Error("activation must not touch other programs")
	}
}

func TestCohortService_Activate_NotFound(t *testing.T) {
	svc, _ := setupTestCohortService()

	_, err := svc.Activate(context.Background(), "missing", "u")
	if !errors.Is(err, ErrCohortNotFound) {
		t.Errorf("expected ErrCohortNotFound, got %v", err)
	}
}

// ── Update ──

func TestCohortService_Update_ActivateAndDeactivate(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	ctx := context.Background()
	a := store.seedCohort(program.ProgramID, "A")
	b := store.seedCohort(program.ProgramID, "B")

	if _, err := svc.Activate(ctx, a.CohortID, "u"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	got, err := svc.Update(ctx, b.CohortID, &dto.UpdateCohortRequest{IsActive: boolPtr(true), Name: strPtr("B2")}, "u")
	if err != nil {
		t.Fatalf("Update activate: %v", err)
	}
	if !got.IsActive || got.Name != "B2" {
		t.Errorf("expected B2 active, got %+v", got)
	}
	if store.cohorts.rows[a.CohortID].IsActive {
		t.Error("A should have been deactivated")
	}

	got, err = svc.Update(ctx, b.CohortID, &dto.UpdateCohortRequest{IsActive: boolPtr(false)}, "u")
	if err != nil {
		t.Fatalf("Update deactivate: %v", err)
	}
	if got.IsActive || len(store.repo.Cohort.(*memCohortRepo).active(program.ProgramID)) != 0 {
		t.Error("no cohort should be active after deactivation")
	}
}

func TestCohortService_Update_YearRangeChecksMergedValues(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	c := store.seedCohort(program.ProgramID, "A") // 2025..2029

	_, err := svc.Update(context.Background(), c.CohortID, &dto.UpdateCohortRequest{StartYear: intPtr(2030)}, "u")
	if pkgerrors.KindOf(err) != pkgerrors.KindValidation {
		t.Errorf("expected a validation error, got %v", err)
	}
	if store.cohorts.rows[c.CohortID].StartYear != 2025 {
		t.Error("a rejected update must not be stored")
	}
}

// ── Initialize ──

func TestCohortService_Initialize_SeedsVisionsAndYears(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	c := store.seedCohort(program.ProgramID, "A")

	resp, err := svc.Initialize(context.Background(), c.CohortID, "u")
	if err != nil {
		t.Fatalf("Initialize should succeed: %v", err)
	}

	if len(resp.Visions) != 3 {
		t.Fatalf("expected 3 visions, got %d", len(resp.Visions))
	}
	seen := map[model.VisionType]bool{}
	for _, v := range resp.Visions {
		seen[v.Type] = true
		if v.Status != model.StatusDraft || v.Title == "" {
			t.Errorf("unexpected vision %+v", v)
		}
	}
	for _, vt := range model.VisionTypes {
		if !seen[vt] {
			t.Errorf("missing vision type %s", vt)
		}
	}

	wantNames := []string{"Propedeuse", "Hoofdfase 1", "Hoofdfase 2", "Hoofdfase 3"}
	if len(resp.AcademicYears) != len(wantNames) {
		t.Fatalf("expected %d years, got %d", len(wantNames), len(resp.AcademicYears))
	}
	for i, y := range resp.AcademicYears {
		if y.YearNumber != i+1 || y.Name != wantNames[i] {
			t.Errorf("year %d: got number %d name %q", i, y.YearNumber, y.Name)
		}
		if y.TargetCredits != 60 || y.SortOrder != i+1 {
			t.Errorf("year %d: got target %v sort %d", i, y.TargetCredits, y.SortOrder)
		}
	}
	if len(store.visions.rows) != 3 || len(store.years.rows) != 4 {
		t.Errorf("store holds %d visions and %d years", len(store.visions.rows), len(store.years.rows))
	}
}

func TestCohortService_Initialize_Twice(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationMBO, 3, 0)
	c := store.seedCohort(program.ProgramID, "A")
	ctx := context.Background()

	if _, err := svc.Initialize(ctx, c.CohortID, "u"); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	_, err := svc.Initialize(ctx, c.CohortID, "u")
	if !errors.Is(err, ErrCohortAlreadyInitialized) {
		t.Fatalf("expected ErrCohortAlreadyInitialized, got %v", err)
	}
	if pkgerrors.KindOf(err) != pkgerrors.KindConflict {
		t.Errorf("expected kind Conflict, got %v", pkgerrors.KindOf(err))
	}
	if len(store.visions.rows) != 3 || len(store.years.rows) != 3 {
		t.Errorf("second Initialize must not write, store holds %d visions and %d years",
			len(store.visions.rows), len(store.years.rows))
	}
}

func TestCohortService_Initialize_RejectsCohortWithYears(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	c := store.seedCohort(program.ProgramID, "A")
	store.seedYear(c.CohortID, 1)

	_, err := svc.Initialize(context.Background(), c.CohortID, "u")
	if !errors.Is(err, ErrCohortAlreadyInitialized) {
		t.Fatalf("expected ErrCohortAlreadyInitialized, got %v", err)
	}
	if len(store.visions.rows) != 0 {
		t.Error("no visions may be created for an initialized cohort")
	}
}

func TestCohortService_Initialize_RollsBackOnFailure(t *testing.T) {
	svc, store := setupTestCohortService()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	c := store.seedCohort(program.ProgramID, "A")
	// Make the third vision collide, as a concurrent Initialize would.
	store.visions.uniques = append(store.visions.uniques, memUnique[model.Vision]{
		name: "uq_visions_cohort_type",
		same: func(_, b *model.Vision) bool { return b.Type == model.VisionAssessment },
	})
	store.visions.put(model.Vision{CohortID: "elsewhere", Type: model.VisionLearning})

	_, err := svc.Initialize(context.Background(), c.CohortID, "u")
	if !errors.Is(err, ErrCohortAlreadyInitialized) {
		t.Fatalf("a concurrent initialize should surface as ErrCohortAlreadyInitialized, got %v", err)
	}
	for _, v := range store.visions.rows {
		if v.CohortID == c.CohortID {
			t.Fatal("partial visions must be rolled back")
		}
	}
}

func TestCohortService_Initialize_NotFound(t *testing.T) {
	svc, _ := setupTestCohortService()

	_, err := svc.Initialize(context.Background(), "missing", "u")
	if !errors.Is(err, ErrCohortNotFound) {
		t.Errorf("expected ErrCohortNotFound, got %v", err)
	}
}
