// Package exporter writes transaction lists to CSV files for use in
// spreadsheets and external tools.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"

	"github.com/gocarina/gocsv"
)

// Exporter writes CSV files with a configurable delimiter.
type Exporter struct {
	delimiter rune
	headers   bool
	log       logging.Logger
}

// New creates an Exporter. A zero delimiter falls back to comma.
func New(delimiter rune, includeHeaders bool, log logging.Logger) *Exporter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Exporter{delimiter: delimiter, headers: includeHeaders, log: log}
}

// csvRow is the flattened CSV representation of one transaction.
// Multi-valued fields are joined with ';' inside a single column.
type csvRow struct {
	ID                 string `csv:"id"`
	Date               string `csv:"date"`
	Description        string `csv:"description"`
	Amount             string `csv:"amount"`
	Type               string `csv:"type"`
	Category           string `csv:"category"`
	AccountID          string `csv:"account_id"`
	IsTransfer         bool   `csv:"is_transfer"`
	TransferAccountID  string `csv:"transfer_account_id"`
	GoalID             string `csv:"goal_id"`
	DebtID             string `csv:"debt_id"`
	BudgetEntryID      string `csv:"budget_entry_id"`
	PortfolioDirection string `csv:"portfolio_direction"`
	Tags               string `csv:"tags"`
	Splits             string `csv:"splits"`
}

func toRow(tx models.Transaction) csvRow {
	splits := make([]string, 0, len(tx.Splits))
	for _, split := range tx.Splits {
		splits = append(splits, fmt.Sprintf("%s:%s", split.Category, split.Amount.StringFixed(2)))
	}
	return csvRow{
		ID:                 tx.ID,
		Date:               tx.Date,
		Description:        tx.Description,
		Amount:             tx.Amount.StringFixed(2),
		Type:               tx.Type,
		Category:           tx.Category,
		AccountID:          tx.AccountID,
		IsTransfer:         tx.IsTransfer,
		TransferAccountID:  tx.TransferAccountID,
		GoalID:             tx.GoalID,
		DebtID:             tx.DebtID,
		BudgetEntryID:      tx.BudgetEntryID,
		PortfolioDirection: tx.PortfolioDirection,
		Tags:               strings.Join(tx.Tags, ";"),
		Splits:             strings.Join(splits, ";"),
	}
}

// WriteFile exports the transactions to csvFile, creating parent
// directories as needed.
func (e *Exporter) WriteFile(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	e.log.Info("writing transactions to CSV",
		logging.F(logging.FieldFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)))

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.log.WithError(err).Warn("failed to close file", logging.F(logging.FieldFile, csvFile))
		}
	}()

	rows := make([]csvRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, toRow(tx))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = e.delimiter

	safe := gocsv.NewSafeCSVWriter(csvWriter)
	if e.headers {
		err = gocsv.MarshalCSV(&rows, safe)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(&rows, safe)
	}
	if err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
