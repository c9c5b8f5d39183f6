package model

import "gorm.io/datatypes"

// Program maps the programs table. EducationType never changes after creation and
// decides whether an MBOConfig or an HBOConfig may exist.
type Program struct {
	ProgramID     string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"program_id"`
	AcademyID     string        `gorm:"type:uuid;not null;index"                       json:"academy_id"`
	Name          string        `gorm:"type:varchar(200);not null"                     json:"name"`
	Code          string        `gorm:"type:varchar(50);not null"                      json:"code"`
	CreboCode     *string       `gorm:"type:varchar(20)"                               json:"crebo_code,omitempty"`
	EducationType EducationType `gorm:"type:varchar(3);not null"                       json:"education_type"`
	DegreeType    string        `gorm:"type:varchar(50);not null;default:''"           json:"degree_type"`
	DurationYears int           `gorm:"type:smallint;not null"                         json:"duration_years"`
	TotalCredits  float64       `gorm:"type:numeric(7,2);not null;default:0"           json:"total_credits"`
	BaseModel

	MBOConfig *MBOConfig `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"mbo_config,omitempty"`
	HBOConfig *HBOConfig `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"hbo_config,omitempty"`
}

func (Program) TableName() string { return "programs" }

// MBOConfig maps the mbo_configs table, one per MBO program.
type MBOConfig struct {
	MBOConfigID     string          `gorm:"column:mbo_config_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"mbo_config_id"`
	ProgramID       string          `gorm:"type:uuid;not null;uniqueIndex:uq_mbo_configs_program"            json:"program_id"`
	Leerweg         Leerweg         `gorm:"type:varchar(3);not null"                                          json:"leerweg"`
	Niveau          int             `gorm:"type:smallint;not null"                                            json:"niveau"`
	Ontwerpprincipe string          `gorm:"type:text;not null;default:''"                                     json:"ontwerpprincipe"`
	DossierName     string          `gorm:"type:varchar(200);not null;default:''"                             json:"dossier_name"`
	DossierVersion  string          `gorm:"type:varchar(50);not null;default:''"                              json:"dossier_version"`
	DossierDate     *datatypes.Date `gorm:"type:date"                                                         json:"dossier_date,omitempty"`
	BaseModel

	Kerntaken  []Kerntaak  `gorm:"foreignKey:MBOConfigID;constraint:OnDelete:CASCADE" json:"kerntaken,omitempty"`
	Keuzedelen []Keuzedeel `gorm:"foreignKey:MBOConfigID;constraint:OnDelete:CASCADE" json:"keuzedelen,omitempty"`
}

func (MBOConfig) TableName() string { return "mbo_configs" }

// Kerntaak maps the kerntaken table, core task of a qualification file.
type Kerntaak struct {
	KerntaakID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"kerntaak_id"`
	MBOConfigID string `gorm:"column:mbo_config_id;type:uuid;not null;index"   json:"mbo_config_id"`
	Code        string `gorm:"type:varchar(30);not null"                       json:"code"`
	Title       string `gorm:"type:varchar(300);not null"                      json:"title"`
	SortOrder   int    `gorm:"not null;default:0"                              json:"sort_order"`
	BaseModel

	Werkprocessen []Werkproces `gorm:"foreignKey:KerntaakID;constraint:OnDelete:CASCADE" json:"werkprocessen,omitempty"`
}

func (Kerntaak) TableName() string { return "kerntaken" }

// Werkproces maps the werkprocessen table, work process under a core task.
type Werkproces struct {
	WerkprocesID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"werkproces_id"`
	KerntaakID   string `gorm:"type:uuid;not null;index"                       json:"kerntaak_id"`
	Code         string `gorm:"type:varchar(30);not null"                      json:"code"`
	Title        string `gorm:"type:varchar(300);not null"                     json:"title"`
	Description  string `gorm:"type:text;not null;default:''"                  json:"description"`
	SortOrder    int    `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (Werkproces) TableName() string { return "werkprocessen" }

// Keuzedeel maps the keuzedelen table, elective qualification parts.
type Keuzedeel struct {
	KeuzedeelID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"keuzedeel_id"`
	MBOConfigID string `gorm:"column:mbo_config_id;type:uuid;not null;index"  json:"mbo_config_id"`
	Code        string `gorm:"type:varchar(30);not null"                      json:"code"`
	Title       string `gorm:"type:varchar(300);not null"                     json:"title"`
	SBU         int    `gorm:"column:sbu;not null;default:0"                  json:"sbu"`
	SortOrder   int    `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel
}

func (Keuzedeel) TableName() string { return "keuzedelen" }

// HBOConfig maps the hbo_configs table, one per HBO program.
type HBOConfig struct {
	HBOConfigID       string     `gorm:"column:hbo_config_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"hbo_config_id"`
	ProgramID         string     `gorm:"type:uuid;not null;uniqueIndex:uq_hbo_configs_program"            json:"program_id"`
	Variant           HBOVariant `gorm:"type:varchar(10);not null"                                         json:"variant"`
	Toetsfilosofie    string     `gorm:"type:text;not null;default:''"                                     json:"toetsfilosofie"`
	Ordeningsprincipe string     `gorm:"type:text;not null;default:''"                                     json:"ordeningsprincipe"`
	Tijdsnede         string     `gorm:"type:text;not null;default:''"                                     json:"tijdsnede"`
	BaseModel
}

func (HBOConfig) TableName() string { return "hbo_configs" }
