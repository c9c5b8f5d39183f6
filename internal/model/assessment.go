package model

import "time"

// Assessment maps the assessments table, owned by a block and optionally tied to one
// of its teaching units.
type Assessment struct {
	AssessmentID    string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assessment_id"`
	BlockID         string         `gorm:"type:uuid;not null;index"                       json:"block_id"`
	TeachingUnitID  *string        `gorm:"type:uuid"                                      json:"teaching_unit_id,omitempty"`
	Code            string         `gorm:"type:varchar(30);not null"                      json:"code"`
	Title           string         `gorm:"type:varchar(200);not null"                     json:"title"`
	Description     string         `gorm:"type:text;not null;default:''"                  json:"description"`
	AssessmentType  AssessmentType `gorm:"type:varchar(20);not null;default:'summative'"  json:"assessment_type"`
	AssessmentForm  AssessmentForm `gorm:"type:varchar(30);not null"                      json:"assessment_form"`
	IsSummative     bool           `gorm:"not null"                                       json:"is_summative"`
	Weight          float64        `gorm:"type:numeric(5,2);not null"                     json:"weight"`
	Credits         float64        `gorm:"type:numeric(6,2);not null;default:0"           json:"credits"`
	MinimumGrade    *float64       `gorm:"type:numeric(4,2)"                              json:"minimum_grade,omitempty"`
	RetakeAllowed   bool           `gorm:"not null"                                       json:"retake_allowed"`
	GradingModel    GradingModel   `gorm:"type:varchar(20);not null;default:'numeric'"    json:"grading_model"`
	DurationMinutes *int           `json:"duration_minutes,omitempty"`
	SortOrder       int            `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel

	Outcomes []AssessmentOutcome   `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"outcomes,omitempty"`
	Criteria []AssessmentCriterion `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"criteria,omitempty"`
}

func (Assessment) TableName() string { return "assessments" }

// AssessmentOutcome maps the assessment_outcomes table, weight-bearing link.
type AssessmentOutcome struct {
	LinkID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"link_id"`
	AssessmentID string    `gorm:"type:uuid;not null;uniqueIndex:uq_assessment_outcomes" json:"assessment_id"`
	OutcomeID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_assessment_outcomes" json:"outcome_id"`
	Weight       float64   `gorm:"type:numeric(5,2);not null;default:0"               json:"weight"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"created_at"`
}

func (AssessmentOutcome) TableName() string { return "assessment_outcomes" }

// AssessmentCriterion maps the assessment_criteria table
type AssessmentCriterion struct {
	CriterionID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"criterion_id"`
	AssessmentID string  `gorm:"type:uuid;not null;index"                       json:"assessment_id"`
	OutcomeID    *string `gorm:"type:uuid"                                      json:"outcome_id,omitempty"`
	Name         string  `gorm:"type:varchar(200);not null"                     json:"name"`
	Description  string  `gorm:"type:text;not null;default:''"                  json:"description"`
	Weight       float64 `gorm:"type:numeric(5,2);not null;default:0"           json:"weight"`
	SortOrder    int     `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel

	Levels []RubricLevel `gorm:"foreignKey:CriterionID;constraint:OnDelete:CASCADE" json:"levels,omitempty"`
}

func (AssessmentCriterion) TableName() string { return "assessment_criteria" }

// RubricLevel maps the rubric_levels table
type RubricLevel struct {
	RubricLevelID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                 json:"rubric_level_id"`
	CriterionID   string  `gorm:"type:uuid;not null;uniqueIndex:uq_rubric_levels_criterion_level" json:"criterion_id"`
	LevelNumber   int     `gorm:"type:smallint;not null;uniqueIndex:uq_rubric_levels_criterion_level" json:"level_number"`
	Label         string  `gorm:"type:varchar(100);not null"                                     json:"label"`
	Description   string  `gorm:"type:text;not null;default:''"                                  json:"description"`
	Points        float64 `gorm:"type:numeric(6,2);not null;default:0"                           json:"points"`
	BaseModel
}

func (RubricLevel) TableName() string { return "rubric_levels" }
