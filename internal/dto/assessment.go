package dto

// ── assessments ──

type CreateAssessmentRequest struct {
	TeachingUnitID  *string  `json:"teaching_unit_id" validate:"omitempty,uuid"`
	Code            string   `json:"code"             validate:"required,notblank,max=30"`
	Title           string   `json:"title"            validate:"required,notblank,max=200"`
	Description     string   `json:"description"`
	AssessmentType  string   `json:"assessment_type"  validate:"omitempty,oneof=formative summative"`
	AssessmentForm  string   `json:"assessment_form"  validate:"required,oneof=written_exam digital_exam open_book_exam take_home_exam oral_exam portfolio presentation report project practical_assignment observation peer_assessment criterion_interview"`
	IsSummative     *bool    `json:"is_summative"`
	Weight          *float64 `json:"weight"           validate:"omitempty,min=0,max=100"`
	Credits         float64  `json:"credits"          validate:"min=0"`
	MinimumGrade    *float64 `json:"minimum_grade"    validate:"omitempty,min=0,max=10"`
	RetakeAllowed   *bool    `json:"retake_allowed"`
	GradingModel    string   `json:"grading_model"    validate:"omitempty,oneof=numeric pass_fail rubric letter"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,min=1"`
	SortOrder       *int     `json:"sort_order"       validate:"omitempty,min=0"`
}

type UpdateAssessmentRequest struct {
	TeachingUnitID  *string  `json:"teaching_unit_id" validate:"omitempty,uuid"`
	Code            *string  `json:"code"             validate:"omitempty,notblank,max=30"`
	Title           *string  `json:"title"            validate:"omitempty,notblank,max=200"`
	Description     *string  `json:"description"`
	AssessmentType  *string  `json:"assessment_type"  validate:"omitempty,oneof=formative summative"`
	AssessmentForm  *string  `json:"assessment_form"  validate:"omitempty,oneof=written_exam digital_exam open_book_exam take_home_exam oral_exam portfolio presentation report project practical_assignment observation peer_assessment criterion_interview"`
	IsSummative     *bool    `json:"is_summative"`
	Weight          *float64 `json:"weight"           validate:"omitempty,min=0,max=100"`
	Credits         *float64 `json:"credits"          validate:"omitempty,min=0"`
	MinimumGrade    *float64 `json:"minimum_grade"    validate:"omitempty,min=0,max=10"`
	RetakeAllowed   *bool    `json:"retake_allowed"`
	GradingModel    *string  `json:"grading_model"    validate:"omitempty,oneof=numeric pass_fail rubric letter"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,min=1"`
}

type AssessmentOutcomeInput struct {
	OutcomeID string  `json:"outcome_id" validate:"required,uuid"`
	Weight    float64 `json:"weight"     validate:"min=0,max=100"`
}

// SetAssessmentOutcomesRequest replaces every outcome link of one assessment.
type SetAssessmentOutcomesRequest struct {
	Outcomes []AssessmentOutcomeInput `json:"outcomes" validate:"dive"`
}

// ── criteria & rubric ──

type CreateCriterionRequest struct {
	OutcomeID   *string `json:"outcome_id"  validate:"omitempty,uuid"`
	Name        string  `json:"name"        validate:"required,notblank,max=200"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"      validate:"min=0,max=100"`
	SortOrder   *int    `json:"sort_order"  validate:"omitempty,min=0"`
}

type UpdateCriterionRequest struct {
	OutcomeID   *string  `json:"outcome_id"  validate:"omitempty,uuid"`
	Name        *string  `json:"name"        validate:"omitempty,notblank,max=200"`
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight"      validate:"omitempty,min=0,max=100"`
}

type CreateRubricLevelRequest struct {
	LevelNumber int     `json:"level_number" validate:"required,min=1,max=10"`
	Label       string  `json:"label"        validate:"required,notblank,max=100"`
	Description string  `json:"description"`
	Points      float64 `json:"points"       validate:"min=0"`
}

type UpdateRubricLevelRequest struct {
	LevelNumber *int     `json:"level_number" validate:"omitempty,min=1,max=10"`
	Label       *string  `json:"label"        validate:"omitempty,notblank,max=100"`
	Description *string  `json:"description"`
	Points      *float64 `json:"points"       validate:"omitempty,min=0"`
}
