package models

import "github.com/shopspring/decimal"

// BudgetEntry is a planned allocation for a category and period.
// A transaction may link to one, which can cascade into the form's
// type and category selection.
type BudgetEntry struct {
	ID        string          `json:"id" yaml:"id"`
	Category  string          `json:"category" yaml:"category"`
	Type      string          `json:"type" yaml:"type"`
	Frequency string          `json:"frequency" yaml:"frequency"`
	Planned   decimal.Decimal `json:"planned" yaml:"planned"`
	Actual    decimal.Decimal `json:"actual" yaml:"actual"`
	Remaining decimal.Decimal `json:"remaining" yaml:"remaining"`
	GoalID    string          `json:"goal_id" yaml:"goal_id"`
	DebtID    string          `json:"debt_id" yaml:"debt_id"`
}
