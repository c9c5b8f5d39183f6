package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/dto"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
)

func setupTestOutcomeService() (OutcomeService, *memStore, model.Cohort) {
	store := newMemStore()
	program := store.seedProgram(model.EducationHBO, 4, 240)
	cohort := store.seedCohort(program.ProgramID, "2025")
	return NewOutcomeService(store.repo, zap.NewNop()), store, cohort
}

func TestOutcomeService_Create_RoundTrip(t *testing.T) {
	svc, _, cohort := setupTestOutcomeService()
	ctx := context.Background()

	req := &dto.CreateOutcomeRequest{Code: "LU1", Title: "Analyseren", Description: "d", BloomLevel: "analyze", Category: "skills"}
	created, err := svc.Create(ctx, cohort.CohortID, req, "u")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.GetByID(ctx, created.OutcomeID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Code != "LU1" || got.Title != "Analyseren" || got.Description != "d" ||
		got.BloomLevel != model.BloomAnalyze || got.Category != model.CategorySkills || got.SortOrder != 1 {
		t.Errorf("round trip changed fields: %+v", got)
	}
}

func TestOutcomeService_Reorder(t *testing.T) {
	svc, store, cohort := setupTestOutcomeService()
	o1 := store.seedOutcome(cohort.CohortID, "O1", 1)
	o2 := store.seedOutcome(cohort.CohortID, "O2", 2)

	if err := svc.Reorder(context.Background(), cohort.CohortID, &dto.ReorderRequest{IDs: []string{o2.OutcomeID, o1.OutcomeID}}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	list, _ := svc.ListByCohort(context.Background(), cohort.CohortID)
	if len(list) != 2 || list[0].OutcomeID != o2.OutcomeID || list[1].SortOrder != 2 {
		t.Errorf("unexpected order %+v", list)
	}
}

func TestOutcomeService_Reorder_Atomic(t *testing.T) {
	svc, store, cohort := setupTestOutcomeService()
	o1 := store.seedOutcome(cohort.CohortID, "O1", 1)
	o2 := store.seedOutcome(cohort.CohortID, "O2", 2)
	store.outcomeSiblings.failAfter = 1

	err := svc.Reorder(context.Background(), cohort.CohortID, &dto.ReorderRequest{IDs: []string{o2.OutcomeID, o1.OutcomeID}})
	if !errors.Is(err, errInjected) {
		t.Fatalf("expected the injected failure, got %v", err)
	}
	if store.outcomes.rows[o2.OutcomeID].SortOrder != 2 {
		t.Error("the first write must be rolled back")
	}
}

func TestOutcomeService_SetVisionLinks(t *testing.T) {
	svc, store, cohort := setupTestOutcomeService()
	o := store.seedOutcome(cohort.CohortID, "O1", 1)
	learning := store.visions.put(model.Vision{CohortID: cohort.CohortID, Type: model.VisionLearning})
	assessment := store.visions.put(model.Vision{CohortID: cohort.CohortID, Type: model.VisionAssessment})
	ctx := context.Background()

	links, err := svc.SetVisionLinks(ctx, o.OutcomeID, &dto.SetOutcomeVisionLinksRequest{Links: []dto.OutcomeVisionLinkInput{
		{VisionID: learning.VisionID},
		{VisionID: assessment.VisionID, Relevance: "secondary"},
	}})
	if err != nil {
		t.Fatalf("SetVisionLinks: %v", err)
	}
	if len(links) != 2 || links[0].Relevance != model.RelevancePrimary || links[1].Relevance != model.RelevanceSecondary {
		t.Errorf("unexpected links %+v", links)
	}
	if links[0].LinkID == "" {
		t.Error("stored links should carry their id")
	}

	stored, err := svc.ListVisionLinks(ctx, o.OutcomeID)
	if err != nil || len(stored) != 2 {
		t.Fatalf("ListVisionLinks: %v %+v", err, stored)
	}

	if _, err := svc.SetVisionLinks(ctx, o.OutcomeID, &dto.SetOutcomeVisionLinksRequest{}); err != nil {
		t.Fatalf("clearing links: %v", err)
	}
	if stored, _ := svc.ListVisionLinks(ctx, o.OutcomeID); len(stored) != 0 {
		t.Errorf("expected no links, got %d", len(stored))
	}
}

func TestOutcomeService_SetVisionLinks_ForeignVision(t *testing.T) {
	svc, store, cohort := setupTestOutcomeService()
	o := store.seedOutcome(cohort.CohortID, "O1", 1)
	other := store.seedCohort(cohort.ProgramID, "2026")
	foreign := store.visions.put(model.Vision{CohortID: other.CohortID, Type: model.VisionLearning})

	_, err := svc.SetVisionLinks(context.Background(), o.OutcomeID, &dto.SetOutcomeVisionLinksRequest{Links: []dto.OutcomeVisionLinkInput{
		{VisionID: foreign.VisionID},
	}})
	if !errors.Is(err, ErrVisionNotFound) {
		t.Errorf("expected ErrVisionNotFound, got %v", err)
	}
}

func TestOutcomeService_SetVisionLinks_UnknownOutcome(t *testing.T) {
	svc, _, _ := setupTestOutcomeService()

	_, err := svc.SetVisionLinks(context.Background(), "missing", &dto.SetOutcomeVisionLinksRequest{})
	if !errors.Is(err, ErrOutcomeNotFound) {
		t.Errorf("expected ErrOutcomeNotFound, got %v", err)
	}
}
