package form

import (
	"context"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/textutils"
)

// SelectBudgetEntry links the transaction to a budget entry. When the
// entry's declared type matches a known transaction type, the type is
// applied through the dependency resolver with the budget's category as
// an explicit override, carrying any goal/debt the entry declares. With
// no matching type only the category is overridden.
func (f *Form) SelectBudgetEntry(ctx context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.catalogs.BudgetEntryByID(entryID)
	if !ok {
		return apperror.NewValidation("budget", "presupuesto desconocido")
	}

	matched := false
	for _, typeOpt := range f.catalogs.Types {
		if textutils.NormalizeLabel(typeOpt.Label) == textutils.NormalizeLabel(entry.Type) {
			if err := f.applyTypeLocked(ctx, typeOpt.ID, cascade{
				Category: entry.Category,
				GoalID:   entry.GoalID,
				DebtID:   entry.DebtID,
			}); err != nil {
				return err
			}
			matched = true
			break
		}
	}
	if !matched {
		f.state.Category = entry.Category
	}

	f.budget = &entry
	f.state.BudgetEntryID = entry.ID
	f.categoryFromBudget = true

	f.log.Debug("budget entry linked",
		logging.F("budget_entry_id", entry.ID),
		logging.F(logging.FieldCategory, entry.Category),
		logging.F("type_matched", matched))
	return nil
}

// ClearBudgetEntry drops the budget link without touching fields already
// derived from it.
func (f *Form) ClearBudgetEntry() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.budget = nil
	f.state.BudgetEntryID = ""
	f.categoryFromBudget = false
}

// BudgetSelection returns the linked budget entry id, empty when none.
func (f *Form) BudgetSelection() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.BudgetEntryID
}
