package dto

// ── credit overview ──

// YearCreditOverview compares the credits planned in one academic year
// with its target.
type YearCreditOverview struct {
	AcademicYearID string  `json:"academic_year_id"`
	YearNumber     int     `json:"year_number"`
	Name           string  `json:"name"`
	Credits        float64 `json:"credits"`
	TargetCredits  float64 `json:"target_credits"`
	Difference     float64 `json:"difference"`
}

type CreditOverviewResponse struct {
	CohortID            string               `json:"cohort_id"`
	Unit                string               `json:"unit"`
	Years               []YearCreditOverview `json:"years"`
	TotalCredits        float64              `json:"total_credits"`
	ProgramTotalCredits float64              `json:"program_total_credits"`
	Difference          float64              `json:"difference"`
}

// ── coverage matrix ──

type CoverageColumn struct {
	BlockID    string `json:"block_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	YearNumber int    `json:"year_number"`
}

type CoverageRow struct {
	OutcomeID        string `json:"outcome_id"`
	Code             string `json:"code"`
	Title            string `json:"title"`
	Cells            []bool `json:"cells"`
	TotalAssessments int    `json:"total_assessments"`
}

// CoverageMatrixResponse is the outcome by block grid. Rows[i].Cells[j]
// tells whether outcome i is assessed in block Columns[j].
type CoverageMatrixResponse struct {
	CohortID string           `json:"cohort_id"`
	Columns  []CoverageColumn `json:"columns"`
	Rows     []CoverageRow    `json:"rows"`
}
