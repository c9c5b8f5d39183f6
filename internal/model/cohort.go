package model

import "time"

// Cohort maps the cohorts table. At most one cohort per program has IsActive set,
// backed by the partial unique index uq_cohorts_one_active_per_program.
type Cohort struct {
	CohortID  string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                              json:"cohort_id"`
	ProgramID string       `gorm:"type:uuid;not null;index;uniqueIndex:uq_cohorts_one_active_per_program,where:is_active" json:"program_id"`
	Name      string       `gorm:"type:varchar(100);not null"                                                  json:"name"`
	StartYear int          `gorm:"not null"                                                                    json:"start_year"`
	EndYear   int          `gorm:"not null"                                                                    json:"end_year"`
	Status    CohortStatus `gorm:"type:varchar(20);not null;default:'draft'"                                   json:"status"`
	IsActive  bool         `gorm:"not null;default:false"                                                      json:"is_active"`
	BaseModel
}

func (Cohort) TableName() string { return "cohorts" }

// Vision maps the visions table, unique per (cohort, type).
type Vision struct {
	VisionID    string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"              json:"vision_id"`
	CohortID    string       `gorm:"type:uuid;not null;uniqueIndex:uq_visions_cohort_type"       json:"cohort_id"`
	Type        VisionType   `gorm:"column:vision_type;type:varchar(20);not null;uniqueIndex:uq_visions_cohort_type" json:"type"`
	Title       string       `gorm:"type:varchar(200);not null"                                  json:"title"`
	Content     string       `gorm:"type:text;not null;default:''"                               json:"content"`
	Status      ReviewStatus `gorm:"type:varchar(20);not null;default:'draft'"                   json:"status"`
	PublishedAt *time.Time   `json:"published_at,omitempty"`
	BaseModel

	Principles []VisionPrinciple `gorm:"foreignKey:VisionID;constraint:OnDelete:CASCADE" json:"principles,omitempty"`
}

func (Vision) TableName() string { return "visions" }

// VisionPrinciple maps the vision_principles table
type VisionPrinciple struct {
	PrincipleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"principle_id"`
	VisionID    string `gorm:"type:uuid;not null;index"                       json:"vision_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	SortOrder   int    `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (VisionPrinciple) TableName() string { return "vision_principles" }

// LearningOutcome maps the learning_outcomes table. Code is unique per cohort by
// convention only.
type LearningOutcome struct {
	OutcomeID   string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"outcome_id"`
	CohortID    string          `gorm:"type:uuid;not null;index"                       json:"cohort_id"`
	Code        string          `gorm:"type:varchar(30);not null"                      json:"code"`
	Title       string          `gorm:"type:varchar(300);not null"                     json:"title"`
	Description string          `gorm:"type:text;not null;default:''"                  json:"description"`
	BloomLevel  BloomLevel      `gorm:"type:varchar(20);not null"                      json:"bloom_level"`
	Category    OutcomeCategory `gorm:"type:varchar(20);not null"                      json:"category"`
	SortOrder   int             `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (LearningOutcome) TableName() string { return "learning_outcomes" }

// OutcomeVisionLink maps the outcome_vision_links table
type OutcomeVisionLink struct {
	LinkID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"link_id"`
	OutcomeID string    `gorm:"type:uuid;not null;uniqueIndex:uq_outcome_vision_links" json:"outcome_id"`
	VisionID  string    `gorm:"type:uuid;not null;uniqueIndex:uq_outcome_vision_links" json:"vision_id"`
	Relevance Relevance `gorm:"type:varchar(20);not null;default:'primary'"     json:"relevance"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"              json:"created_at"`
}

func (OutcomeVisionLink) TableName() string { return "outcome_vision_links" }
