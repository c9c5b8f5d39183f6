package dto

// ── academic years ──

type CreateAcademicYearRequest struct {
	YearNumber    int      `json:"year_number"    validate:"required,min=1,max=6"`
	Name          string   `json:"name"           validate:"required,notblank,max=100"`
	TargetCredits *float64 `json:"target_credits" validate:"omitempty,min=0"`
}

type UpdateAcademicYearRequest struct {
	Name          *string  `json:"name"           validate:"omitempty,notblank,max=100"`
	TargetCredits *float64 `json:"target_credits" validate:"omitempty,min=0"`
}

// ── blocks ──

type CreateBlockRequest struct {
	Code             string  `json:"code"              validate:"required,notblank,max=30"`
	Name             string  `json:"name"              validate:"required,notblank,max=200"`
	ShortDescription string  `json:"short_description" validate:"max=500"`
	Description      string  `json:"description"`
	Type             string  `json:"type"              validate:"omitempty,oneof=educational project practical internship graduation"`
	Credits          float64 `json:"credits"           validate:"min=0"`
	DurationWeeks    *int    `json:"duration_weeks"    validate:"omitempty,min=1,max=52"`
	Status           string  `json:"status"            validate:"omitempty,oneof=draft review approved archived"`
	Color            string  `json:"color"             validate:"omitempty,hexcolor"`
	SortOrder        *int    `json:"sort_order"        validate:"omitempty,min=0"`
}

type UpdateBlockRequest struct {
	Code             *string  `json:"code"              validate:"omitempty,notblank,max=30"`
	Name             *string  `json:"name"              validate:"omitempty,notblank,max=200"`
	ShortDescription *string  `json:"short_description" validate:"omitempty,max=500"`
	Description      *string  `json:"description"`
	Type             *string  `json:"type"              validate:"omitempty,oneof=educational project practical internship graduation"`
	Credits          *float64 `json:"credits"           validate:"omitempty,min=0"`
	DurationWeeks    *int     `json:"duration_weeks"    validate:"omitempty,min=1,max=52"`
	Status           *string  `json:"status"            validate:"omitempty,oneof=draft review approved archived"`
	Color            *string  `json:"color"             validate:"omitempty,hexcolor"`
}

type BlockVisionRelationInput struct {
	VisionID    string `json:"vision_id"   validate:"required,uuid"`
	Strength    string `json:"strength"    validate:"omitempty,oneof=strong moderate weak"`
	Description string `json:"description"`
}

// SetBlockVisionRelationsRequest replaces every vision relation of one block.
type SetBlockVisionRelationsRequest struct {
	Relations []BlockVisionRelationInput `json:"relations" validate:"dive"`
}

// CreditsResponse is a raw credit sum for one year or cohort.
type CreditsResponse struct {
	ID      string  `json:"id"`
	Credits float64 `json:"credits"`
}

// ── teaching units ──

type CreateTeachingUnitRequest struct {
	Code           string  `json:"code"             validate:"required,notblank,max=30"`
	Name           string  `json:"name"             validate:"required,notblank,max=200"`
	Description    string  `json:"description"`
	Credits        float64 `json:"credits"          validate:"min=0"`
	ContactHours   float64 `json:"contact_hours"    validate:"min=0"`
	SelfStudyHours float64 `json:"self_study_hours" validate:"min=0"`
	SortOrder      *int    `json:"sort_order"       validate:"omitempty,min=0"`
}

type UpdateTeachingUnitRequest struct {
	Code           *string  `json:"code"             validate:"omitempty,notblank,max=30"`
	Name           *string  `json:"name"             validate:"omitempty,notblank,max=200"`
	Description    *string  `json:"description"`
	Credits        *float64 `json:"credits"          validate:"omitempty,min=0"`
	ContactHours   *float64 `json:"contact_hours"    validate:"omitempty,min=0"`
	SelfStudyHours *float64 `json:"self_study_hours" validate:"omitempty,min=0"`
}

// ── week plannings ──

type CreateWeekPlanningRequest struct {
	WeekNumber    int    `json:"week_number"    validate:"required,min=1,max=52"`
	Theme         string `json:"theme"          validate:"max=200"`
	LearningGoals string `json:"learning_goals"`
}

type UpdateWeekPlanningRequest struct {
	WeekNumber    *int    `json:"week_number"    validate:"omitempty,min=1,max=52"`
	Theme         *string `json:"theme"          validate:"omitempty,max=200"`
	LearningGoals *string `json:"learning_goals"`
}

// ── learning activities ──

type CreateLearningActivityRequest struct {
	Name            string `json:"name"             validate:"required,notblank,max=200"`
	Description     string `json:"description"`
	ActivityType    string `json:"activity_type"    validate:"required,oneof=lecture seminar workshop self_study group_work practical excursion guest_lecture coaching"`
	DurationMinutes int    `json:"duration_minutes" validate:"min=0"`
	SortOrder       *int   `json:"sort_order"       validate:"omitempty,min=0"`
}

type UpdateLearningActivityRequest struct {
	Name            *string `json:"name"             validate:"omitempty,notblank,max=200"`
	Description     *string `json:"description"`
	ActivityType    *string `json:"activity_type"    validate:"omitempty,oneof=lecture seminar workshop self_study group_work practical excursion guest_lecture coaching"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=0"`
}

// ── assignments ──

type CreateAssignmentRequest struct {
	WeekPlanningID *string `json:"week_planning_id" validate:"omitempty,uuid"`
	Code           string  `json:"code"             validate:"required,notblank,max=30"`
	Title          string  `json:"title"            validate:"required,notblank,max=200"`
	Description    string  `json:"description"`
	AssignmentType string  `json:"assignment_type"  validate:"required,oneof=case project report practical presentation portfolio other"`
	WorkForm       string  `json:"work_form"        validate:"omitempty,oneof=individual duo group"`
	MinGroupSize   *int    `json:"min_group_size"   validate:"omitempty,min=1"`
	MaxGroupSize   *int    `json:"max_group_size"   validate:"omitempty,min=1"`
	EstimatedHours float64 `json:"estimated_hours"  validate:"min=0"`
	DueWeek        *int    `json:"due_week"         validate:"omitempty,min=1,max=52"`
	SortOrder      *int    `json:"sort_order"       validate:"omitempty,min=0"`
}

type UpdateAssignmentRequest struct {
	WeekPlanningID *string  `json:"week_planning_id" validate:"omitempty,uuid"`
	Code           *string  `json:"code"             validate:"omitempty,notblank,max=30"`
	Title          *string  `json:"title"            validate:"omitempty,notblank,max=200"`
	Description    *string  `json:"description"`
	AssignmentType *string  `json:"assignment_type"  validate:"omitempty,oneof=case project report practical presentation portfolio other"`
	WorkForm       *string  `json:"work_form"        validate:"omitempty,oneof=individual duo group"`
	MinGroupSize   *int     `json:"min_group_size"   validate:"omitempty,min=1"`
	MaxGroupSize   *int     `json:"max_group_size"   validate:"omitempty,min=1"`
	EstimatedHours *float64 `json:"estimated_hours"  validate:"omitempty,min=0"`
	DueWeek        *int     `json:"due_week"         validate:"omitempty,min=1,max=52"`
}

type AssignmentOutcomeInput struct {
	OutcomeID    string  `json:"outcome_id"   validate:"required,uuid"`
	Contribution float64 `json:"contribution" validate:"min=0,max=100"`
}

// SetAssignmentOutcomesRequest replaces every outcome link of one assignment.
type SetAssignmentOutcomesRequest struct {
	Outcomes []AssignmentOutcomeInput `json:"outcomes" validate:"dive"`
}
