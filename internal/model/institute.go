package model

import "gorm.io/datatypes"

// BrandColors is the institute's house style used by the dashboards.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
	Accent    string `json:"accent,omitempty"`
}

// Institute maps the institutes table
type Institute struct {
	InstituteID string                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"institute_id"`
	Name        string                          `gorm:"type:varchar(200);not null"                     json:"name"`
	ShortCode   string                          `gorm:"type:varchar(20);not null;uniqueIndex:uq_institutes_short_code" json:"short_code"`
	BrandColors datatypes.JSONType[BrandColors] `gorm:"type:jsonb;not null"                            json:"brand_colors"`
	BaseModel

	Academies []Academy `gorm:"foreignKey:InstituteID;constraint:OnDelete:CASCADE" json:"academies,omitempty"`
}

func (Institute) TableName() string { return "institutes" }

// Academy maps the academies table
type Academy struct {
	AcademyID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"academy_id"`
	InstituteID string `gorm:"type:uuid;not null;uniqueIndex:uq_academies_institute_code" json:"institute_id"`
	Name        string `gorm:"type:varchar(200);not null"                               json:"name"`
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex:uq_academies_institute_code" json:"code"`
	BaseModel
}

func (Academy) TableName() string { return "academies" }
