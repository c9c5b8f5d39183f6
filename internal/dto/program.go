package dto

// ── programs ──

// CreateProgramRequest fixes the education type for the life of the program.
type CreateProgramRequest struct {
	Name          string  `json:"name"           validate:"required,notblank,max=200"`
	Code          string  `json:"code"           validate:"required,notblank,max=50"`
	CreboCode     *string `json:"crebo_code"     validate:"omitempty,max=20"`
	EducationType string  `json:"education_type" validate:"required,oneof=MBO HBO"`
	DegreeType    string  `json:"degree_type"    validate:"max=50"`
	DurationYears int     `json:"duration_years" validate:"required,min=1,max=6"`
	TotalCredits  float64 `json:"total_credits"  validate:"min=0"`
}

// UpdateProgramRequest has no education_type: it cannot change.
type UpdateProgramRequest struct {
	Name          *string  `json:"name"           validate:"omitempty,notblank,max=200"`
	Code          *string  `json:"code"           validate:"omitempty,notblank,max=50"`
	CreboCode     *string  `json:"crebo_code"     validate:"omitempty,max=20"`
	DegreeType    *string  `json:"degree_type"    validate:"omitempty,max=50"`
	DurationYears *int     `json:"duration_years" validate:"omitempty,min=1,max=6"`
	TotalCredits  *float64 `json:"total_credits"  validate:"omitempty,min=0"`
}

// ── type-specific configuration ──

type UpsertMBOConfigRequest struct {
	Leerweg         string  `json:"leerweg"         validate:"required,oneof=BOL BBL"`
	Niveau          int     `json:"niveau"          validate:"required,min=1,max=4"`
	Ontwerpprincipe string  `json:"ontwerpprincipe"`
	DossierName     string  `json:"dossier_name"    validate:"max=200"`
	DossierVersion  string  `json:"dossier_version" validate:"max=50"`
	DossierDate     *string `json:"dossier_date"    validate:"omitempty,datetime=2006-01-02"`
}

type UpsertHBOConfigRequest struct {
	Variant           string `json:"variant" validate:"required,oneof=voltijd deeltijd duaal"`
	Toetsfilosofie    string `json:"toetsfilosofie"`
	Ordeningsprincipe string `json:"ordeningsprincipe"`
	Tijdsnede         string `json:"tijdsnede"`
}

// ── qualification dossier parts (MBO) ──

type CreateKerntaakRequest struct {
	Code      string `json:"code"       validate:"required,notblank,max=30"`
	Title     string `json:"title"      validate:"required,notblank,max=300"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,min=0"`
}

type UpdateKerntaakRequest struct {
	Code  *string `json:"code"  validate:"omitempty,notblank,max=30"`
	Title *string `json:"title" validate:"omitempty,notblank,max=300"`
}

type CreateWerkprocesRequest struct {
	Code        string `json:"code"        validate:"required,notblank,max=30"`
	Title       string `json:"title"       validate:"required,notblank,max=300"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sort_order"  validate:"omitempty,min=0"`
}

type UpdateWerkprocesRequest struct {
	Code        *string `json:"code"        validate:"omitempty,notblank,max=30"`
	Title       *string `json:"title"       validate:"omitempty,notblank,max=300"`
	Description *string `json:"description"`
}

type CreateKeuzedeelRequest struct {
	Code      string `json:"code"       validate:"required,notblank,max=30"`
	Title     string `json:"title"      validate:"required,notblank,max=300"`
	SBU       int    `json:"sbu"        validate:"min=0"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,min=0"`
}

type UpdateKeuzedeelRequest struct {
	Code  *string `json:"code"  validate:"omitempty,notblank,max=30"`
	Title *string `json:"title" validate:"omitempty,notblank,max=300"`
	SBU   *int    `json:"sbu"   validate:"omitempty,min=0"`
}
