package form

import (
	"fmt"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/models"

	"github.com/shopspring/decimal"
)

// SetSplitMode toggles dividing the transaction across multiple
// categories. Turning it on seeds one empty row and forces the multiple
// categories sentinel; turning it off clears both. Split mode excludes
// transfer and portfolio modes.
func (f *Form) SetSplitMode(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if on == f.splitMode {
		return
	}

	if on {
		f.splitMode = true
		if len(f.splits) == 0 {
			f.splits = []models.SplitRow{models.NewSplitRow()}
		}
		// A transfer or portfolio type cannot carry splits; leaving it
		// selected would let the payload pair such a type with split rows.
		// Dropping it forces the user to pick a compatible type.
		if kind := f.kindLocked(); kind == KindTransfer || kind == KindPortfolio {
			f.state.TypeID = ""
			f.categories = nil
			f.generation++
		}
		f.state.Category = models.CategoryMultiple
		f.state.IsTransfer = false
		f.state.TransferAccountID = ""
		f.state.PortfolioDirection = ""
		return
	}

	f.splitMode = false
	f.splits = nil
	if f.state.Category == models.CategoryMultiple {
		f.state.Category = ""
	}
}

// SplitMode reports whether split mode is active.
func (f *Form) SplitMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.splitMode
}

// AddSplitRow appends an empty row and returns it.
func (f *Form) AddSplitRow() models.SplitRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := models.NewSplitRow()
	f.splits = append(f.splits, row)
	return row
}

// RemoveSplitRow deletes a row by local id.
func (f *Form) RemoveSplitRow(localID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, row := range f.splits {
		if row.LocalID == localID {
			f.splits = append(f.splits[:i], f.splits[i+1:]...)
			return nil
		}
	}
	return apperror.NewValidation("splits", "división desconocida")
}

// SetSplitRow updates a row's category and amount text.
func (f *Form) SetSplitRow(localID, category, amountText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.splits {
		if f.splits[i].LocalID == localID {
			f.splits[i].Category = category
			f.splits[i].AmountText = amountText
			return nil
		}
	}
	return apperror.NewValidation("splits", "división desconocida")
}

// SplitRows returns a copy of the current rows.
func (f *Form) SplitRows() []models.SplitRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SplitRow{}, f.splits...)
}

// validateSplitsLocked enforces the reconciliation invariant: every row
// has a category and a positive amount, and the rows sum to the total
// within models.Tolerance.
func (f *Form) validateSplitsLocked(total decimal.Decimal) ([]models.Split, error) {
	if len(f.splits) == 0 {
		return nil, apperror.NewValidation("splits", "agrega al menos una división")
	}

	parsed := make([]models.Split, 0, len(f.splits))
	sum := decimal.Zero
	for _, row := range f.splits {
		if row.Category == "" {
			return nil, apperror.NewValidation("splits", "cada división necesita una categoría")
		}
		amount, err := models.ParseAmount(row.AmountText)
		if err != nil || !amount.IsPositive() {
			return nil, apperror.NewValidation("splits", "cada división necesita un monto mayor que cero")
		}
		sum = sum.Add(amount)
		parsed = append(parsed, models.Split{Category: row.Category, Amount: amount})
	}

	if !models.WithinTolerance(sum, total) {
		diff := sum.Sub(total).Abs()
		return nil, apperror.NewValidation("splits", fmt.Sprintf(
			"las divisiones no cuadran con el total: diferencia de %s",
			models.FormatAmount(diff)))
	}
	return parsed, nil
}
