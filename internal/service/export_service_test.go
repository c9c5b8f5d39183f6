package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

func TestExportService_ExportCohort(t *testing.T) {
	store := newMemStore()
	logger := zap.NewNop()
	svc := NewExportService(store.repo, NewDashboardService(store.repo, logger), logger)

	program := store.seedProgram(model.EducationHBO, 4, 240)
	cohort := store.seedCohort(program.ProgramID, "Cohort 2025/2026")
	y1 := store.seedYear(cohort.CohortID, 1)
	b1 := store.seedBlock(y1.AcademicYearID, "B1", 15, 1)
	store.seedBlock(y1.AcademicYearID, "B2", 15, 2)
	o1 := store.seedOutcome(cohort.CohortID, "O1", 1)
	store.seedOutcome(cohort.CohortID, "O2", 2)
	a := store.seedAssessment(b1.BlockID, "T1")
	store.assessOutcomes.put(model.AssessmentOutcome{AssessmentID: a.AssessmentID, OutcomeID: o1.OutcomeID})

	buf, filename, err := svc.ExportCohort(context.Background(), cohort.CohortID)
	if err != nil {
		t.Fatalf("ExportCohort: %v", err)
	}
	if filename != "curriculum_Cohort_2025_2026.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{coverageSheet, creditSheet}) {
		t.Fatalf("unexpected sheets %v", got)
	}

	rows, err := f.GetRows(coverageSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 outcome rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"Code", "Leeruitkomst", "J1 B1", "J1 B2", "Totaal"}) {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "O1" || rows[1][2] != "X" || rows[1][4] != "1" {
		t.Errorf("unexpected first row %v", rows[1])
	}

	credits, err := f.GetRows(creditSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(credits) != 3 || credits[0][2] != "Gepland (EC)" || credits[2][1] != "Totaal opleiding" {
		t.Errorf("unexpected credit sheet %v", credits)
	}
}

func TestExportService_ExportCohort_NotFound(t *testing.T) {
	store := newMemStore()
	svc := NewExportService(store.repo, NewDashboardService(store.repo, zap.NewNop()), zap.NewNop())

	if _, _, err := svc.ExportCohort(context.Background(), "missing"); !errors.Is(err, ErrCohortNotFound) {
		t.Errorf("expected ErrCohortNotFound, got %v", err)
	}
}

func TestExportFilename(t *testing.T) {
	cases := map[string]string{
		"2025":        "curriculum_2025.xlsx",
		" a/b:c ":     "curriculum_a_b_c.xlsx",
		"":            "curriculum_cohort.xlsx",
		"Cohort 2025": "curriculum_Cohort_2025.xlsx",
	}
	for in, want := range cases {
		if got := exportFilename(in); got != want {
			t.Errorf("exportFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
