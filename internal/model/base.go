package model

import "time"

// BaseModel audit columns embedded by every curriculum record.
// CreatedBy / UpdatedBy hold the subject of the caller's access token.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:varchar(100)"                  json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:varchar(100)"                  json:"updated_by,omitempty"`
}

// Stamp sets both audit subjects for a newly created record.
func (b *BaseModel) Stamp(callerID string) {
	b.CreatedBy = &callerID
	b.UpdatedBy = &callerID
}

// Touch sets the updating subject.
func (b *BaseModel) Touch(callerID string) {
	b.UpdatedBy = &callerID
}
