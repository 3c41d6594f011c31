package models

import "github.com/google/uuid"

// SplitRow is one editable line of a divided transaction. LocalID
// identifies the row within the form only; it never reaches the backend.
type SplitRow struct {
	LocalID    string
	Category   string
	AmountText string
}

// NewSplitRow creates an empty split row with a fresh local id.
func NewSplitRow() SplitRow {
	return SplitRow{LocalID: uuid.NewString()}
}
