package dto

// ReorderRequest carries the complete new order of one sibling group.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"dive,required,uuid"`
}
