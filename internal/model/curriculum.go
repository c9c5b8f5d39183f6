package model

import "time"

// AcademicYear maps the academic_years table
type AcademicYear struct {
	AcademicYearID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"academic_year_id"`
	CohortID       string  `gorm:"type:uuid;not null;index"                       json:"cohort_id"`
	YearNumber     int     `gorm:"type:smallint;not null"                         json:"year_number"`
	Name           string  `gorm:"type:varchar(100);not null"                     json:"name"`
	TargetCredits  float64 `gorm:"type:numeric(6,2);not null"                     json:"target_credits"`
	SortOrder      int     `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel

	Blocks []Block `gorm:"foreignKey:AcademicYearID;constraint:OnDelete:CASCADE" json:"blocks,omitempty"`
}

func (AcademicYear) TableName() string { return "academic_years" }

// Block maps the blocks table, a curriculum module within an academic year.
type Block struct {
	BlockID          string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"block_id"`
	AcademicYearID   string       `gorm:"type:uuid;not null;index"                       json:"academic_year_id"`
	Code             string       `gorm:"type:varchar(30);not null"                      json:"code"`
	Name             string       `gorm:"type:varchar(200);not null"                     json:"name"`
	ShortDescription string       `gorm:"type:varchar(500);not null;default:''"          json:"short_description"`
	Description      string       `gorm:"type:text;not null;default:''"                  json:"description"`
	Type             BlockType    `gorm:"column:block_type;type:varchar(20);not null;default:'educational'" json:"type"`
	Credits          float64      `gorm:"type:numeric(6,2);not null;default:0"           json:"credits"`
	DurationWeeks    int          `gorm:"type:smallint;not null"                         json:"duration_weeks"`
	Status           ReviewStatus `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	Color            string       `gorm:"type:varchar(7);not null;default:'#3B82F6'"     json:"color"`
	SortOrder        int          `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (Block) TableName() string { return "blocks" }

// BlockVisionRelation maps the block_vision_relations table, one per (block, vision).
type BlockVisionRelation struct {
	RelationID  string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"relation_id"`
	BlockID     string           `gorm:"type:uuid;not null;uniqueIndex:uq_block_vision_relations" json:"block_id"`
	VisionID    string           `gorm:"type:uuid;not null;uniqueIndex:uq_block_vision_relations" json:"vision_id"`
	Strength    RelationStrength `gorm:"type:varchar(20);not null;default:'moderate'"             json:"strength"`
	Description string           `gorm:"type:text;not null;default:''"                            json:"description"`
	CreatedAt   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

func (BlockVisionRelation) TableName() string { return "block_vision_relations" }

// TeachingUnit maps the teaching_units table
type TeachingUnit struct {
	TeachingUnitID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teaching_unit_id"`
	BlockID        string  `gorm:"type:uuid;not null;index"                       json:"block_id"`
	Code           string  `gorm:"type:varchar(30);not null"                      json:"code"`
	Name           string  `gorm:"type:varchar(200);not null"                     json:"name"`
	Description    string  `gorm:"type:text;not null;default:''"                  json:"description"`
	Credits        float64 `gorm:"type:numeric(6,2);not null;default:0"           json:"credits"`
	ContactHours   float64 `gorm:"type:numeric(6,1);not null;default:0"           json:"contact_hours"`
	SelfStudyHours float64 `gorm:"type:numeric(6,1);not null;default:0"           json:"self_study_hours"`
	SortOrder      int     `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (TeachingUnit) TableName() string { return "teaching_units" }

// WeekPlanning maps the week_plannings table, week numbers are unique within a unit.
type WeekPlanning struct {
	WeekPlanningID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"             json:"week_planning_id"`
	TeachingUnitID string `gorm:"type:uuid;not null;uniqueIndex:uq_week_plannings_unit_week" json:"teaching_unit_id"`
	WeekNumber     int    `gorm:"type:smallint;not null;uniqueIndex:uq_week_plannings_unit_week" json:"week_number"`
	Theme          string `gorm:"type:varchar(200);not null;default:''"                      json:"theme"`
	LearningGoals  string `gorm:"type:text;not null;default:''"                              json:"learning_goals"`
	BaseModel

	Activities []LearningActivity `gorm:"foreignKey:WeekPlanningID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
}

func (WeekPlanning) TableName() string { return "week_plannings" }

// LearningActivity maps the learning_activities table
type LearningActivity struct {
	ActivityID      string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_id"`
	WeekPlanningID  string       `gorm:"type:uuid;not null;index"                       json:"week_planning_id"`
	Name            string       `gorm:"type:varchar(200);not null"                     json:"name"`
	Description     string       `gorm:"type:text;not null;default:''"                  json:"description"`
	ActivityType    ActivityType `gorm:"type:varchar(20);not null"                      json:"activity_type"`
	DurationMinutes int          `gorm:"not null;default:0"                             json:"duration_minutes"`
	SortOrder       int          `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (LearningActivity) TableName() string { return "learning_activities" }

// Assignment maps the assignments table. WeekPlanningID is optional and cleared when
// the week is deleted.
type Assignment struct {
	AssignmentID   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	TeachingUnitID string         `gorm:"type:uuid;not null;index"                       json:"teaching_unit_id"`
	WeekPlanningID *string        `gorm:"type:uuid"                                      json:"week_planning_id,omitempty"`
	Code           string         `gorm:"type:varchar(30);not null"                      json:"code"`
	Title          string         `gorm:"type:varchar(200);not null"                     json:"title"`
	Description    string         `gorm:"type:text;not null;default:''"                  json:"description"`
	AssignmentType AssignmentType `gorm:"type:varchar(20);not null"                      json:"assignment_type"`
	WorkForm       WorkForm       `gorm:"type:varchar(20);not null;default:'individual'" json:"work_form"`
	MinGroupSize   *int           `gorm:"type:smallint"                                  json:"min_group_size,omitempty"`
	MaxGroupSize   *int           `gorm:"type:smallint"                                  json:"max_group_size,omitempty"`
	EstimatedHours float64        `gorm:"type:numeric(6,1);not null;default:0"           json:"estimated_hours"`
	DueWeek        *int           `gorm:"type:smallint"                                  json:"due_week,omitempty"`
	SortOrder      int            `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (Assignment) TableName() string { return "assignments" }

// AssignmentOutcome maps the assignment_outcomes table
type AssignmentOutcome struct {
	LinkID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"link_id"`
	AssignmentID string    `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_outcomes" json:"assignment_id"`
	OutcomeID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_outcomes" json:"outcome_id"`
	Contribution float64   `gorm:"type:numeric(5,2);not null;default:0"               json:"contribution"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"created_at"`
}

func (AssignmentOutcome) TableName() string { return "assignment_outcomes" }
