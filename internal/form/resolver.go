package form

import (
	"context"
	"strings"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"
	"finanzas/txform/internal/textutils"
)

// TypeKind classifies a transaction type by what it requires of the rest
// of the form.
type TypeKind int

const (
	KindStandard TypeKind = iota
	KindGoal
	KindDebt
	KindTransfer
	KindPortfolio
)

// KindForLabel derives the kind from a type's label by substring
// membership on the normalized (diacritics-stripped, lowercased) form.
func KindForLabel(label string) TypeKind {
	normalized := textutils.NormalizeLabel(label)
	switch {
	case strings.Contains(normalized, models.KeywordGoal):
		return KindGoal
	case strings.Contains(normalized, models.KeywordDebt):
		return KindDebt
	case strings.Contains(normalized, models.KeywordTransfer):
		return KindTransfer
	case strings.Contains(normalized, models.KeywordPortfolio):
		return KindPortfolio
	default:
		return KindStandard
	}
}

// cascade carries field values a budget selection pushes through a type
// change.
type cascade struct {
	Category string
	GoalID   string
	DebtID   string
}

// SelectType switches the form to a transaction type and re-derives the
// dependent fields. The scoped category list is fetched asynchronously;
// call Settle to join it.
func (f *Form) SelectType(ctx context.Context, typeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applyTypeLocked(ctx, typeID, cascade{})
}

func (f *Form) applyTypeLocked(ctx context.Context, typeID string, c cascade) error {
	typeOpt, ok := f.catalogs.TypeByID(typeID)
	if !ok {
		return apperror.NewValidation("type", "tipo de transacción desconocido")
	}

	kind := KindForLabel(typeOpt.Label)
	f.state.TypeID = typeID

	// Transfer and portfolio exclude split mode; selecting either turns
	// it off.
	if kind == KindTransfer || kind == KindPortfolio {
		f.splitMode = false
		f.splits = nil
	}

	if kind == KindTransfer {
		f.state.IsTransfer = true
		f.state.Category = models.CategoryTransfer
		f.categories = nil
	} else {
		f.state.IsTransfer = false
		f.state.TransferAccountID = ""
		switch {
		case c.Category != "":
			f.state.Category = c.Category
		case f.splitMode:
			f.state.Category = models.CategoryMultiple
		default:
			// The previous category was scoped to the previous type.
			f.state.Category = ""
		}
	}

	if kind != KindPortfolio {
		f.state.PortfolioDirection = ""
	}

	if c.GoalID != "" {
		f.state.GoalID = c.GoalID
	} else if kind != KindGoal {
		f.state.GoalID = ""
	}
	if c.DebtID != "" {
		f.state.DebtID = c.DebtID
	} else if kind != KindDebt {
		f.state.DebtID = ""
	}

	// A requirement without any available option is advisory, never a
	// reason to block the type selection itself.
	if kind == KindGoal && len(f.catalogs.Goals) == 0 {
		f.addAdvisoryLocked(models.AdvisoryNoGoals)
	}
	if kind == KindDebt && len(f.catalogs.Debts) == 0 {
		f.addAdvisoryLocked(models.AdvisoryNoDebts)
	}

	if kind != KindTransfer {
		f.spawnCategoryFetchLocked(ctx, typeID, c.Category)
	}

	f.log.Debug("transaction type selected",
		logging.F(logging.FieldTypeID, typeID),
		logging.F("kind", int(kind)))
	return nil
}

// spawnCategoryFetchLocked issues the scoped category fetch. The
// generation counter guards against a fetch resolving after the form
// closed or the type changed again.
func (f *Form) spawnCategoryFetchLocked(ctx context.Context, typeID, override string) {
	f.generation++
	gen := f.generation
	f.fetches.Add(1)
	go f.fetchCategories(ctx, typeID, override, gen)
}

func (f *Form) fetchCategories(ctx context.Context, typeID, override string, gen int) {
	defer f.fetches.Done()

	categories, err := f.backend.Categories(ctx, typeID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || gen != f.generation {
		// Stale resolve: the form was closed or retargeted meanwhile.
		return
	}
	if err != nil {
		f.categories = nil
		f.addAdvisoryLocked("no se pudieron cargar las categorías")
		f.log.WithError(err).Warn("category fetch failed",
			logging.F(logging.FieldTypeID, typeID))
		return
	}

	if override != "" && !containsString(categories, override) {
		// Keep an externally supplied selection valid by appending it
		// as a synthetic entry.
		categories = append(categories, override)
	}
	f.categories = categories
}

// CurrentKind returns the kind of the selected type, KindStandard when
// none is selected.
func (f *Form) CurrentKind() TypeKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kindLocked()
}

func (f *Form) kindLocked() TypeKind {
	if f.state.TypeID == "" {
		return KindStandard
	}
	typeOpt, ok := f.catalogs.TypeByID(f.state.TypeID)
	if !ok {
		return KindStandard
	}
	return KindForLabel(typeOpt.Label)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
