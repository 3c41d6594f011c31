// Package draft loads transaction drafts from YAML files and replays
// them through the form, resolving field dependencies in the same order
// a user filling the form would.
package draft

import (
	"context"
	"fmt"
	"os"

	"finanzas/txform/internal/form"

	"gopkg.in/yaml.v3"
)

// Split is one category/amount pair of a drafted division.
type Split struct {
	Category string `yaml:"category"`
	Amount   string `yaml:"amount"`
}

// Draft is the YAML shape of a transaction to create or edit. Amounts
// stay textual so the form applies its own parsing rules.
type Draft struct {
	Description        string   `yaml:"description"`
	Amount             string   `yaml:"amount"`
	Date               string   `yaml:"date"`
	Type               string   `yaml:"type"`
	Category           string   `yaml:"category"`
	Account            string   `yaml:"account"`
	Goal               string   `yaml:"goal,omitempty"`
	Debt               string   `yaml:"debt,omitempty"`
	BudgetEntry        string   `yaml:"budget_entry,omitempty"`
	TransferAccount    string   `yaml:"transfer_account,omitempty"`
	PortfolioDirection string   `yaml:"portfolio_direction,omitempty"`
	Splits             []Split  `yaml:"splits,omitempty"`
	Tags               []string `yaml:"tags,omitempty"`
	AttachReceipts     []string `yaml:"attach_receipts,omitempty"`
	DeleteReceipts     []string `yaml:"delete_receipts,omitempty"`
}

// Load reads and parses a draft file.
func Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading draft file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML draft data.
func Parse(data []byte) (*Draft, error) {
	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("error parsing draft: %w", err)
	}
	return &d, nil
}

// Apply replays the draft onto the form. Fields are applied in
// dependency order so cascades fire the same way they would
// interactively: type first, then the budget link, then categories and
// the remaining scalars, then splits, tags and receipts. The first
// rejected field aborts the replay.
func (d *Draft) Apply(ctx context.Context, f *form.Form) error {
	if d.Type != "" {
		if err := f.SelectType(ctx, d.Type); err != nil {
			return err
		}
		f.Settle()
	}

	if d.BudgetEntry != "" {
		if err := f.SelectBudgetEntry(ctx, d.BudgetEntry); err != nil {
			return err
		}
		f.Settle()
	}

	if d.Category != "" {
		f.SelectCategory(d.Category)
	}
	if d.Account != "" {
		if err := f.SelectAccount(d.Account); err != nil {
			return err
		}
	}
	if d.Goal != "" {
		if err := f.SelectGoal(d.Goal); err != nil {
			return err
		}
	}
	if d.Debt != "" {
		if err := f.SelectDebt(d.Debt); err != nil {
			return err
		}
	}
	if d.TransferAccount != "" {
		if err := f.SetTransferTarget(d.TransferAccount); err != nil {
			return err
		}
	}
	if d.PortfolioDirection != "" {
		if err := f.SetPortfolioDirection(d.PortfolioDirection); err != nil {
			return err
		}
	}

	if d.Description != "" {
		f.SetDescription(d.Description)
	}
	if d.Amount != "" {
		f.SetAmount(d.Amount)
	}
	if d.Date != "" {
		f.SetDate(d.Date)
	}

	if len(d.Splits) > 0 {
		// The draft defines the split list wholesale: rows loaded from an
		// existing transaction must not survive the replay, so split mode
		// is reset before the drafted rows go in.
		f.SetSplitMode(false)
		f.SetSplitMode(true)
		rows := f.SplitRows()
		for i, split := range d.Splits {
			var localID string
			if i < len(rows) {
				localID = rows[i].LocalID
			} else {
				localID = f.AddSplitRow().LocalID
			}
			if err := f.SetSplitRow(localID, split.Category, split.Amount); err != nil {
				return err
			}
		}
	}

	for _, tag := range d.Tags {
		f.AddTag(tag)
	}

	for _, path := range d.AttachReceipts {
		f.AttachReceipt(path)
	}
	for _, receiptID := range d.DeleteReceipts {
		if err := f.StageReceiptDeletion(receiptID); err != nil {
			return err
		}
	}
	return nil
}
