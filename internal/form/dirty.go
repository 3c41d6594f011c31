package form

import (
	"sort"
	"strings"

	"finanzas/txform/internal/models"
	"finanzas/txform/internal/textutils"

	"github.com/shopspring/decimal"
)

// snapshot is the frozen copy of the form taken at edit-load, used only
// to detect a no-op submission.
type snapshot struct {
	description        string
	amount             decimal.Decimal
	amountValid        bool
	date               string
	typeID             string
	category           string
	accountID          string
	goalID             string
	debtID             string
	budgetEntryID      string
	isTransfer         bool
	transferAccountID  string
	portfolioDirection string
	tags               []string
	splits             []models.Split
}

func (f *Form) takeSnapshotLocked() *snapshot {
	s := &snapshot{
		description:        strings.TrimSpace(f.state.Description),
		date:               f.state.Date,
		typeID:             f.state.TypeID,
		category:           f.state.Category,
		accountID:          f.state.AccountID,
		goalID:             f.state.GoalID,
		debtID:             f.state.DebtID,
		budgetEntryID:      f.state.BudgetEntryID,
		isTransfer:         f.state.IsTransfer,
		transferAccountID:  f.state.TransferAccountID,
		portfolioDirection: f.state.PortfolioDirection,
		tags:               f.tags.List(),
		splits:             parseSplitRows(f.splits),
	}
	if amount, err := models.ParseAmount(f.state.AmountText); err == nil {
		s.amount = amount
		s.amountValid = true
	}
	return s
}

// unchangedLocked reports whether every compared field equals the
// initial snapshot. Tags and splits compare order-independently; split
// amounts within tolerance.
func (f *Form) unchangedLocked() bool {
	initial := f.initial
	if initial == nil {
		return false
	}

	if strings.TrimSpace(f.state.Description) != initial.description {
		return false
	}

	amount, err := models.ParseAmount(f.state.AmountText)
	if initial.amountValid {
		if err != nil || !amount.Equal(initial.amount) {
			return false
		}
	} else if err == nil {
		return false
	}

	if f.state.Date != initial.date ||
		f.state.TypeID != initial.typeID ||
		f.state.Category != initial.category ||
		f.state.AccountID != initial.accountID ||
		f.state.GoalID != initial.goalID ||
		f.state.DebtID != initial.debtID ||
		f.state.BudgetEntryID != initial.budgetEntryID ||
		f.state.IsTransfer != initial.isTransfer ||
		f.state.TransferAccountID != initial.transferAccountID ||
		f.state.PortfolioDirection != initial.portfolioDirection {
		return false
	}

	if !equalTagSets(f.tags.List(), initial.tags) {
		return false
	}

	return equalSplitSets(parseSplitRows(f.splits), initial.splits)
}

// parseSplitRows converts editable rows into category/amount pairs,
// skipping rows whose amount does not parse.
func parseSplitRows(rows []models.SplitRow) []models.Split {
	parsed := make([]models.Split, 0, len(rows))
	for _, row := range rows {
		amount, err := models.ParseAmount(row.AmountText)
		if err != nil {
			continue
		}
		parsed = append(parsed, models.Split{Category: row.Category, Amount: amount})
	}
	return parsed
}

func equalTagSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	normalize := func(tags []string) []string {
		out := make([]string, len(tags))
		for i, tag := range tags {
			out[i] = strings.ToLower(textutils.NormalizeTag(tag))
		}
		sort.Strings(out)
		return out
	}
	na, nb := normalize(a), normalize(b)
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

func equalSplitSets(a, b []models.Split) bool {
	if len(a) != len(b) {
		return false
	}
	order := func(splits []models.Split) []models.Split {
		out := append([]models.Split{}, splits...)
		sort.Slice(out, func(i, j int) bool {
			if out[i].Category != out[j].Category {
				return out[i].Category < out[j].Category
			}
			return out[i].Amount.Cmp(out[j].Amount) < 0
		})
		return out
	}
	oa, ob := order(a), order(b)
	for i := range oa {
		if oa[i].Category != ob[i].Category {
			return false
		}
		if !models.WithinTolerance(oa[i].Amount, ob[i].Amount) {
			return false
		}
	}
	return true
}
