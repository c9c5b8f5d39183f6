package dto

// ── institutes ──

type BrandColorsInput struct {
	Primary   string `json:"primary"   validate:"omitempty,hexcolor"`
	Secondary string `json:"secondary" validate:"omitempty,hexcolor"`
	Accent    string `json:"accent"    validate:"omitempty,hexcolor"`
}

type CreateInstituteRequest struct {
	Name        string            `json:"name"         validate:"required,notblank,max=200"`
	ShortCode   string            `json:"short_code"   validate:"required,notblank,max=20"`
	BrandColors *BrandColorsInput `json:"brand_colors"`
}

type UpdateInstituteRequest struct {
	Name        *string           `json:"name"         validate:"omitempty,notblank,max=200"`
	ShortCode   *string           `json:"short_code"   validate:"omitempty,notblank,max=20"`
	BrandColors *BrandColorsInput `json:"brand_colors"`
}

// ── academies ──

type CreateAcademyRequest struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
	Code string `json:"code" validate:"required,notblank,max=20"`
}

type UpdateAcademyRequest struct {
	Name *string `json:"name" validate:"omitempty,notblank,max=200"`
	Code *string `json:"code" validate:"omitempty,notblank,max=20"`
}
