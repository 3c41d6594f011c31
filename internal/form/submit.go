package form

import (
	"context"
	"strings"
	"sync"
	"time"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/models"
)

// Result reports a successful submission. SyncWarning carries partial
// receipt-sync failures; it never indicates a failed save.
type Result struct {
	TransactionID string
	Payload       models.SubmitPayload
	SyncWarning   error
}

// AssemblePayload validates the complete form and constructs the
// submission payload without touching the network. Checks run in a fixed
// order and the first failure is returned as a blocking ValidationError.
// In edit mode a form with no effective changes is blocked.
func (f *Form) AssemblePayload() (models.SubmitPayload, error) {
	f.Settle()
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.assembleLocked(true)
}

// PreviewPayload assembles the payload without the no-changes gate, for
// displaying what a save would send.
func (f *Form) PreviewPayload() (models.SubmitPayload, error) {
	f.Settle()
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.assembleLocked(false)
}

func (f *Form) assembleLocked(enforceDirty bool) (models.SubmitPayload, error) {
	var payload models.SubmitPayload

	if f.state.TypeID == "" {
		return payload, apperror.NewValidation("type", "selecciona un tipo de transacción")
	}

	amount, err := models.ParseAmount(f.state.AmountText)
	if err != nil || !amount.IsPositive() {
		return payload, apperror.NewValidation("amount", "el monto debe ser un número mayor que cero")
	}

	date, err := time.Parse(models.DateFormat, f.state.Date)
	if err != nil {
		return payload, apperror.NewValidation("date", "la fecha no es válida")
	}
	today, _ := time.Parse(models.DateFormat, time.Now().Format(models.DateFormat))
	if date.After(today) {
		return payload, apperror.NewValidation("date", "la fecha no puede ser futura")
	}

	kind := f.kindLocked()

	if kind == KindPortfolio && f.state.PortfolioDirection == "" {
		return payload, apperror.NewValidation("portfolio_direction",
			"selecciona la dirección del portafolio (Compra o Venta)")
	}

	if f.state.AccountID == "" {
		return payload, apperror.NewValidation("account", "selecciona una cuenta")
	}

	if kind == KindGoal && f.state.GoalID == "" {
		return payload, apperror.NewValidation("goal", "este tipo requiere una meta de ahorro")
	}
	if kind == KindDebt && f.state.DebtID == "" {
		return payload, apperror.NewValidation("debt", "este tipo requiere una deuda")
	}

	if !f.state.IsTransfer && !f.splitMode &&
		f.state.Category == "" && f.budget == nil {
		return payload, apperror.NewValidation("category",
			"selecciona una categoría o vincula un presupuesto")
	}

	if f.state.IsTransfer {
		if f.state.TransferAccountID == "" || f.state.TransferAccountID == f.state.AccountID {
			return payload, apperror.NewValidation("transfer_account",
				"selecciona una cuenta de destino distinta")
		}
	}

	var splits []models.Split
	if f.splitMode {
		splits, err = f.validateSplitsLocked(amount)
		if err != nil {
			return payload, err
		}
	}

	if enforceDirty && f.mode == ModeEdit && f.unchangedLocked() {
		return payload, apperror.NewValidation("form", "no se han realizado cambios")
	}

	// Category precedence: transfer sentinel, then split sentinel, then
	// budget category, then the user's selection.
	category := f.state.Category
	switch {
	case f.state.IsTransfer:
		category = models.CategoryTransfer
	case f.splitMode:
		category = models.CategoryMultiple
	case f.budget != nil:
		category = f.budget.Category
	}

	payload = models.SubmitPayload{
		Description:       strings.TrimSpace(f.state.Description),
		Amount:            amount,
		Date:              f.state.Date,
		AccountID:         f.state.AccountID,
		Type:              f.state.TypeID,
		Category:          category,
		GoalID:            f.state.GoalID,
		DebtID:            f.state.DebtID,
		BudgetEntryID:     f.state.BudgetEntryID,
		IsTransfer:        f.state.IsTransfer,
		TransferAccountID: f.state.TransferAccountID,
		Splits:            splits,
		Tags:              f.tags.List(),
	}
	if kind == KindPortfolio {
		payload.PortfolioDirection = f.state.PortfolioDirection
	}
	return payload, nil
}

// Submit validates the form, sends the payload and runs the best-effort
// receipt sync. A validation or save failure leaves the form open and
// populated; a receipt sync failure comes back as Result.SyncWarning on
// an otherwise successful save.
func (f *Form) Submit(ctx context.Context) (*Result, error) {
	payload, err := f.AssemblePayload()
	if err != nil {
		return nil, err
	}

	transactionID := f.editingID
	if f.mode == ModeEdit {
		if err := f.backend.UpdateTransaction(ctx, transactionID, payload); err != nil {
			return nil, err
		}
	} else {
		transactionID, err = f.backend.CreateTransaction(ctx, payload)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{TransactionID: transactionID, Payload: payload}
	result.SyncWarning = f.syncReceipts(ctx, transactionID)
	return result, nil
}

// syncReceipts applies staged deletions and pending uploads concurrently
// as a batch. Individual failures are collected without aborting the
// others; the failed operations stay staged for a manual retry.
func (f *Form) syncReceipts(ctx context.Context, transactionID string) error {
	f.mu.Lock()
	deletes := append([]string{}, f.stagedDeletes...)
	uploads := append([]models.PendingReceipt{}, f.pendingReceipts...)
	f.mu.Unlock()

	total := len(deletes) + len(uploads)
	if total == 0 {
		return nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		doneDel = make(map[string]bool)
		doneUp  = make(map[string]bool)
	)

	for _, receiptID := range deletes {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := f.backend.DeleteReceipt(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			doneDel[id] = true
		}(receiptID)
	}
	for _, pending := range uploads {
		wg.Add(1)
		go func(p models.PendingReceipt) {
			defer wg.Done()
			err := f.backend.UploadReceipt(ctx, transactionID, p.Path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			doneUp[p.LocalID] = true
		}(pending)
	}
	wg.Wait()

	f.mu.Lock()
	remainingDeletes := f.stagedDeletes[:0]
	for _, id := range f.stagedDeletes {
		if !doneDel[id] {
			remainingDeletes = append(remainingDeletes, id)
		}
	}
	f.stagedDeletes = remainingDeletes

	remainingUploads := f.pendingReceipts[:0]
	for _, p := range f.pendingReceipts {
		if !doneUp[p.LocalID] {
			remainingUploads = append(remainingUploads, p)
		}
	}
	f.pendingReceipts = remainingUploads
	f.mu.Unlock()

	if len(errs) == 0 {
		return nil
	}
	return &apperror.SyncError{Failed: len(errs), Total: total, Errs: errs}
}
