package form

// Mode distinguishes creating a new transaction from editing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// FormState holds every user-entered field. It is owned exclusively by
// the form for the duration of its open lifetime.
type FormState struct {
	Description        string
	AmountText         string
	Date               string
	TypeID             string
	Category           string
	AccountID          string
	GoalID             string
	DebtID             string
	BudgetEntryID      string
	IsTransfer         bool
	TransferAccountID  string
	PortfolioDirection string
}
