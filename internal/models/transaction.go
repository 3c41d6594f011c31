package models

import "github.com/shopspring/decimal"

// Transaction is the canonical backend record, as returned by
// GET /transactions and GET /transactions/{id}.
type Transaction struct {
	ID                 string          `json:"id"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"date"`
	AccountID          string          `json:"account_id"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	GoalID             string          `json:"goal_id,omitempty"`
	DebtID             string          `json:"debt_id,omitempty"`
	BudgetEntryID      string          `json:"budget_entry_id,omitempty"`
	IsTransfer         bool            `json:"is_transfer"`
	TransferAccountID  string          `json:"transfer_account_id,omitempty"`
	Splits             []Split         `json:"splits,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
	PortfolioDirection string          `json:"portfolio_direction,omitempty"`
	Receipts           []Receipt       `json:"receipts,omitempty"`
}

// Split is one category/amount pair of a divided transaction as the
// backend stores it.
type Split struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// SubmitPayload is the body of POST /transactions and PUT /transactions/{id}.
type SubmitPayload struct {
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"date"`
	AccountID          string          `json:"account_id"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	GoalID             string          `json:"goal_id,omitempty"`
	DebtID             string          `json:"debt_id,omitempty"`
	BudgetEntryID      string          `json:"budget_entry_id,omitempty"`
	IsTransfer         bool            `json:"is_transfer"`
	TransferAccountID  string          `json:"transfer_account_id,omitempty"`
	Splits             []Split         `json:"splits,omitempty"`
	Tags               []string        `json:"tags"`
	PortfolioDirection string          `json:"portfolio_direction,omitempty"`
}
