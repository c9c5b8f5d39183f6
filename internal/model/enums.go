package model

// EducationType is fixed when a program is created.
type EducationType string

const (
	EducationMBO EducationType = "MBO"
	EducationHBO EducationType = "HBO"
)

// CreditUnit returns the unit credits are expressed in: EC for HBO, SBU for MBO.
func (t EducationType) CreditUnit() string {
	if t == EducationMBO {
		return "SBU"
	}
	return "EC"
}

type CohortStatus string

const (
	CohortDraft     CohortStatus = "draft"
	CohortActive    CohortStatus = "active"
	CohortCompleted CohortStatus = "completed"
	CohortArchived  CohortStatus = "archived"
)

type VisionType string

const (
	VisionLearning   VisionType = "LEARNING"
	VisionProfession VisionType = "PROFESSION"
	VisionAssessment VisionType = "ASSESSMENT"
)

// VisionTypes lists the three visions every cohort is seeded with, in display order.
var VisionTypes = []VisionType{VisionLearning, VisionProfession, VisionAssessment}

// ReviewStatus is shared by visions and blocks.
type ReviewStatus string

const (
	StatusDraft    ReviewStatus = "draft"
	StatusReview   ReviewStatus = "review"
	StatusApproved ReviewStatus = "approved"
	StatusArchived ReviewStatus = "archived"
)

type BloomLevel string

const (
	BloomRemember   BloomLevel = "remember"
	BloomUnderstand BloomLevel = "understand"
	BloomApply      BloomLevel = "apply"
	BloomAnalyze    BloomLevel = "analyze"
	BloomEvaluate   BloomLevel = "evaluate"
	BloomCreate     BloomLevel = "create"
)

type OutcomeCategory string

const (
	CategoryKnowledge OutcomeCategory = "knowledge"
	CategorySkills    OutcomeCategory = "skills"
	CategoryAttitude  OutcomeCategory = "attitude"
)

type Relevance string

const (
	RelevancePrimary   Relevance = "primary"
	RelevanceSecondary Relevance = "secondary"
	RelevanceTertiary  Relevance = "tertiary"
)

// BlockType is the one canonical block classification.
type BlockType string

const (
	BlockEducational BlockType = "educational"
	BlockProject     BlockType = "project"
	BlockPractical   BlockType = "practical"
	BlockInternship  BlockType = "internship"
	BlockGraduation  BlockType = "graduation"
)

type RelationStrength string

const (
	StrengthStrong   RelationStrength = "strong"
	StrengthModerate RelationStrength = "moderate"
	StrengthWeak     RelationStrength = "weak"
)

type ActivityType string

const (
	ActivityLecture      ActivityType = "lecture"
	ActivitySeminar      ActivityType = "seminar"
	ActivityWorkshop     ActivityType = "workshop"
	ActivitySelfStudy    ActivityType = "self_study"
	ActivityGroupWork    ActivityType = "group_work"
	ActivityPractical    ActivityType = "practical"
	ActivityExcursion    ActivityType = "excursion"
	ActivityGuestLecture ActivityType = "guest_lecture"
	ActivityCoaching     ActivityType = "coaching"
)

type AssignmentType string

const (
	AssignmentCase         AssignmentType = "case"
	AssignmentProject      AssignmentType = "project"
	AssignmentReport       AssignmentType = "report"
	AssignmentPractical    AssignmentType = "practical"
	AssignmentPresentation AssignmentType = "presentation"
	AssignmentPortfolio    AssignmentType = "portfolio"
	AssignmentOther        AssignmentType = "other"
)

type WorkForm string

const (
	WorkIndividual WorkForm = "individual"
	WorkDuo        WorkForm = "duo"
	WorkGroup      WorkForm = "group"
)

type AssessmentType string

const (
	AssessmentFormative AssessmentType = "formative"
	AssessmentSummative AssessmentType = "summative"
)

type AssessmentForm string

const (
	FormWrittenExam         AssessmentForm = "written_exam"
	FormDigitalExam         AssessmentForm = "digital_exam"
	FormOpenBookExam        AssessmentForm = "open_book_exam"
	FormTakeHomeExam        AssessmentForm = "take_home_exam"
	FormOralExam            AssessmentForm = "oral_exam"
	FormPortfolio           AssessmentForm = "portfolio"
	FormPresentation        AssessmentForm = "presentation"
	FormReport              AssessmentForm = "report"
	FormProject             AssessmentForm = "project"
	FormPracticalAssignment AssessmentForm = "practical_assignment"
	FormObservation         AssessmentForm = "observation"
	FormPeerAssessment      AssessmentForm = "peer_assessment"
	FormCriterionInterview  AssessmentForm = "criterion_interview"
)

type GradingModel string

const (
	GradingNumeric  GradingModel = "numeric"
	GradingPassFail GradingModel = "pass_fail"
	GradingRubric   GradingModel = "rubric"
	GradingLetter   GradingModel = "letter"
)

type Leerweg string

const (
	LeerwegBOL Leerweg = "BOL"
	LeerwegBBL Leerweg = "BBL"
)

type HBOVariant string

const (
	VariantVoltijd  HBOVariant = "voltijd"
	VariantDeeltijd HBOVariant = "deeltijd"
	VariantDuaal    HBOVariant = "duaal"
)
