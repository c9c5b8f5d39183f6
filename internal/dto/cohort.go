package dto

import "github.com/PeterLoonenMetis/eduview-sub000/internal/model"

// ── cohorts ──

type CreateCohortRequest struct {
	Name      string `json:"name"       validate:"required,notblank,max=100"`
	StartYear int    `json:"start_year" validate:"required,min=1900,max=2200"`
	EndYear   int    `json:"end_year"   validate:"required,min=1900,max=2200"`
	Status    string `json:"status"     validate:"omitempty,oneof=draft active completed archived"`
	IsActive  bool   `json:"is_active"`
}

type UpdateCohortRequest struct {
	Name      *string `json:"name"       validate:"omitempty,notblank,max=100"`
	StartYear *int    `json:"start_year" validate:"omitempty,min=1900,max=2200"`
	EndYear   *int    `json:"end_year"   validate:"omitempty,min=1900,max=2200"`
	Status    *string `json:"status"     validate:"omitempty,oneof=draft active completed archived"`
	IsActive  *bool   `json:"is_active"`
}

// InitializeCohortResponse lists what a fresh cohort was seeded with.
type InitializeCohortResponse struct {
	CohortID      string               `json:"cohort_id"`
	Visions       []model.Vision       `json:"visions"`
	AcademicYears []model.AcademicYear `json:"academic_years"`
}

// ── visions ──

type CreateVisionRequest struct {
	Type    string `json:"type"    validate:"required,oneof=LEARNING PROFESSION ASSESSMENT"`
	Title   string `json:"title"   validate:"required,notblank,max=200"`
	Content string `json:"content"`
	Status  string `json:"status"  validate:"omitempty,oneof=draft review approved archived"`
}

type UpdateVisionRequest struct {
	Title   *string `json:"title"   validate:"omitempty,notblank,max=200"`
	Content *string `json:"content"`
	Status  *string `json:"status"  validate:"omitempty,oneof=draft review approved archived"`
}

type CreatePrincipleRequest struct {
	Title       string `json:"title"       validate:"required,notblank,max=200"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sort_order"  validate:"omitempty,min=0"`
}

type UpdatePrincipleRequest struct {
	Title       *string `json:"title"       validate:"omitempty,notblank,max=200"`
	Description *string `json:"description"`
}

// ── learning outcomes ──

type CreateOutcomeRequest struct {
	Code        string `json:"code"        validate:"required,notblank,max=30"`
	Title       string `json:"title"       validate:"required,notblank,max=300"`
	Description string `json:"description"`
	BloomLevel  string `json:"bloom_level" validate:"required,oneof=remember understand apply analyze evaluate create"`
	Category    string `json:"category"    validate:"required,oneof=knowledge skills attitude"`
	SortOrder   *int   `json:"sort_order"  validate:"omitempty,min=0"`
}

type UpdateOutcomeRequest struct {
	Code        *string `json:"code"        validate:"omitempty,notblank,max=30"`
	Title       *string `json:"title"       validate:"omitempty,notblank,max=300"`
	Description *string `json:"description"`
	BloomLevel  *string `json:"bloom_level" validate:"omitempty,oneof=remember understand apply analyze evaluate create"`
	Category    *string `json:"category"    validate:"omitempty,oneof=knowledge skills attitude"`
}

type OutcomeVisionLinkInput struct {
	VisionID  string `json:"vision_id" validate:"required,uuid"`
	Relevance string `json:"relevance" validate:"omitempty,oneof=primary secondary tertiary"`
}

// SetOutcomeVisionLinksRequest replaces every vision link of one outcome.
type SetOutcomeVisionLinksRequest struct {
	Links []OutcomeVisionLinkInput `json:"links" validate:"dive"`
}
