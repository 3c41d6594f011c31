// Package form implements the transaction entry form's reconciliation
// engine: a state machine over interdependent fields that produces either
// a validated submission payload or a blocking validation error.
package form

import (
	"context"
	"sync"
	"time"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"

	"github.com/google/uuid"
)

// Options tune a form instance.
type Options struct {
	// TagSuggestionLimit caps tag suggestions; defaults to 8.
	TagSuggestionLimit int
	// ReferenceDate scopes the budget catalog fetch; defaults to today.
	ReferenceDate string
}

// Form owns all mutable entry state for one open modal. Catalogs are
// borrowed read-only from the backend and only replaced wholesale.
type Form struct {
	mu      sync.Mutex
	backend Backend
	log     logging.Logger

	mode      Mode
	editingID string

	state              FormState
	catalogs           models.CatalogSnapshot
	categories         []string
	categoryFromBudget bool

	splitMode bool
	splits    []models.SplitRow
	tags      *TagSet
	tagPool   []string
	budget    *models.BudgetEntry

	existingReceipts []models.Receipt
	pendingReceipts  []models.PendingReceipt
	stagedDeletes    []string

	initial *snapshot

	advisories []string

	suggestionLimit int

	closed     bool
	generation int
	fetches    sync.WaitGroup
}

// Open creates a form in create mode. All catalogs are fetched
// concurrently and joined before the form is returned; a failure of the
// accounts, types or budget catalog is fatal, the rest degrade to empty
// lists with an advisory.
func Open(ctx context.Context, backend Backend, log logging.Logger, opts Options) (*Form, error) {
	f := newForm(backend, log, opts)
	f.mode = ModeCreate
	if err := f.loadCatalogs(ctx, opts.referenceDate()); err != nil {
		return nil, err
	}
	f.log.Info("form opened", logging.F(logging.FieldFormMode, string(ModeCreate)))
	return f, nil
}

// OpenForEdit creates a form populated from an existing transaction and
// freezes the initial snapshot used by the dirty check.
func OpenForEdit(ctx context.Context, backend Backend, log logging.Logger, opts Options, transactionID string) (*Form, error) {
	f := newForm(backend, log, opts)
	f.mode = ModeEdit
	if err := f.loadCatalogs(ctx, opts.referenceDate()); err != nil {
		return nil, err
	}

	tx, err := backend.TransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	f.populate(ctx, tx)

	f.log.Info("form opened",
		logging.F(logging.FieldFormMode, string(ModeEdit)),
		logging.F(logging.FieldTransactionID, transactionID))
	return f, nil
}

func newForm(backend Backend, log logging.Logger, opts Options) *Form {
	limit := opts.TagSuggestionLimit
	if limit <= 0 {
		limit = 8
	}
	return &Form{
		backend:         backend,
		log:             log,
		tags:            NewTagSet(),
		suggestionLimit: limit,
	}
}

func (o Options) referenceDate() string {
	if o.ReferenceDate != "" {
		return o.ReferenceDate
	}
	return time.Now().Format(models.DateFormat)
}

// loadCatalogs fetches the seven catalogs concurrently and joins them.
func (f *Form) loadCatalogs(ctx context.Context, referenceDate string) error {
	var wg sync.WaitGroup
	var accounts, types, goals, debts []models.Option
	var budget []models.BudgetEntry
	var tags []string
	var accountsErr, typesErr, goalsErr, debtsErr, budgetErr, tagsErr error

	wg.Add(6)
	go func() { defer wg.Done(); accounts, accountsErr = f.backend.Accounts(ctx) }()
	go func() { defer wg.Done(); types, typesErr = f.backend.TransactionTypes(ctx) }()
	go func() { defer wg.Done(); goals, goalsErr = f.backend.Goals(ctx) }()
	go func() { defer wg.Done(); debts, debtsErr = f.backend.Debts(ctx) }()
	go func() { defer wg.Done(); budget, budgetErr = f.backend.Budget(ctx, referenceDate) }()
	go func() { defer wg.Done(); tags, tagsErr = f.backend.Tags(ctx) }()
	wg.Wait()

	// Required catalogs: without them the form is unusable.
	if accountsErr != nil {
		return &apperror.CatalogError{Catalog: "accounts", Fatal: true, Err: accountsErr}
	}
	if typesErr != nil {
		return &apperror.CatalogError{Catalog: "types", Fatal: true, Err: typesErr}
	}
	if budgetErr != nil {
		return &apperror.CatalogError{Catalog: "budget", Fatal: true, Err: budgetErr}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Optional catalogs degrade to empty lists.
	if goalsErr != nil {
		f.log.WithError(goalsErr).Warn("goals catalog unavailable", logging.F(logging.FieldCatalog, "goals"))
		f.addAdvisoryLocked("no se pudieron cargar las metas")
		goals = nil
	}
	if debtsErr != nil {
		f.log.WithError(debtsErr).Warn("debts catalog unavailable", logging.F(logging.FieldCatalog, "debts"))
		f.addAdvisoryLocked("no se pudieron cargar las deudas")
		debts = nil
	}
	if tagsErr != nil {
		f.log.WithError(tagsErr).Warn("tags catalog unavailable", logging.F(logging.FieldCatalog, "tags"))
		tags = nil
	}

	f.catalogs = models.CatalogSnapshot{
		Accounts:      accounts,
		Types:         types,
		Goals:         goals,
		Debts:         debts,
		BudgetEntries: budget,
		Tags:          tags,
	}
	f.tagPool = append([]string{}, tags...)
	return nil
}

// populate fills the form from an existing transaction and takes the
// initial snapshot.
func (f *Form) populate(ctx context.Context, tx models.Transaction) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.editingID = tx.ID
	f.state = FormState{
		Description:        tx.Description,
		AmountText:         models.FormatAmount(tx.Amount),
		Date:               tx.Date,
		TypeID:             tx.Type,
		Category:           tx.Category,
		AccountID:          tx.AccountID,
		GoalID:             tx.GoalID,
		DebtID:             tx.DebtID,
		BudgetEntryID:      tx.BudgetEntryID,
		IsTransfer:         tx.IsTransfer,
		TransferAccountID:  tx.TransferAccountID,
		PortfolioDirection: tx.PortfolioDirection,
	}

	if len(tx.Splits) > 0 {
		f.splitMode = true
		f.splits = make([]models.SplitRow, 0, len(tx.Splits))
		for _, split := range tx.Splits {
			row := models.NewSplitRow()
			row.Category = split.Category
			row.AmountText = models.FormatAmount(split.Amount)
			f.splits = append(f.splits, row)
		}
	}

	for _, tag := range tx.Tags {
		f.tags.Add(tag)
	}

	f.existingReceipts = append([]models.Receipt{}, tx.Receipts...)

	if tx.BudgetEntryID != "" {
		if entry, ok := f.catalogs.BudgetEntryByID(tx.BudgetEntryID); ok {
			f.budget = &entry
		}
	}

	// Refresh the scoped category list; the stored category rides along
	// as an override so the selection stays valid either way.
	if !tx.IsTransfer && tx.Type != "" {
		f.spawnCategoryFetchLocked(ctx, tx.Type, tx.Category)
	}

	f.initial = f.takeSnapshotLocked()
}

// Settle joins any in-flight asynchronous fetches (scoped categories).
func (f *Form) Settle() {
	f.fetches.Wait()
}

// Close discards the form. Any request still in flight will find the
// liveness guard closed and leave state alone.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.log.Debug("form closed", logging.F(logging.FieldFormMode, string(f.mode)))
}

// Mode returns the form's mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// SetDescription sets the free-text description.
func (f *Form) SetDescription(description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Description = description
}

// SetAmount sets the raw amount text. Parsing happens at submit.
func (f *Form) SetAmount(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.AmountText = text
}

// SetDate sets the transaction date (YYYY-MM-DD).
func (f *Form) SetDate(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Date = date
}

// SelectCategory sets the category by hand, clearing any budget-derived
// marker.
func (f *Form) SelectCategory(category string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Category = category
	f.categoryFromBudget = false
}

// SelectAccount selects the source account.
func (f *Form) SelectAccount(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.catalogs.AccountByID(id); !ok {
		return apperror.NewValidation("account", "cuenta desconocida")
	}
	f.state.AccountID = id
	return nil
}

// SelectGoal earmarks the transaction against a savings goal.
func (f *Form) SelectGoal(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := models.FindOption(f.catalogs.Goals, id); !ok {
		return apperror.NewValidation("goal", "meta desconocida")
	}
	f.state.GoalID = id
	return nil
}

// SelectDebt earmarks the transaction against a debt.
func (f *Form) SelectDebt(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := models.FindOption(f.catalogs.Debts, id); !ok {
		return apperror.NewValidation("debt", "deuda desconocida")
	}
	f.state.DebtID = id
	return nil
}

// SetTransferTarget selects the destination account of a transfer.
func (f *Form) SetTransferTarget(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.catalogs.AccountByID(id); !ok {
		return apperror.NewValidation("transfer_account", "cuenta desconocida")
	}
	f.state.TransferAccountID = id
	return nil
}

// SetPortfolioDirection sets the portfolio operation direction.
func (f *Form) SetPortfolioDirection(direction string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if direction != models.DirectionBuy && direction != models.DirectionSell {
		return apperror.NewValidation("portfolio_direction",
			"la dirección debe ser Compra o Venta")
	}
	f.state.PortfolioDirection = direction
	return nil
}

// AttachReceipt queues a local file for upload after the save.
func (f *Form) AttachReceipt(path string) models.PendingReceipt {
	f.mu.Lock()
	defer f.mu.Unlock()
	pending := models.PendingReceipt{LocalID: uuid.NewString(), Path: path}
	f.pendingReceipts = append(f.pendingReceipts, pending)
	return pending
}

// StageReceiptDeletion marks a persisted receipt for deletion on save.
// Deletions are staged, never applied immediately.
func (f *Form) StageReceiptDeletion(receiptID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for _, receipt := range f.existingReceipts {
		if receipt.ID == receiptID {
			found = true
			break
		}
	}
	if !found {
		return apperror.NewValidation("receipt", "recibo desconocido")
	}
	if !containsString(f.stagedDeletes, receiptID) {
		f.stagedDeletes = append(f.stagedDeletes, receiptID)
	}
	return nil
}

// CreateAccountInline creates an account through the backend, refreshes
// the account catalog wholesale and selects the new account.
func (f *Form) CreateAccountInline(ctx context.Context, name string) (string, error) {
	id, err := f.backend.CreateAccount(ctx, name)
	if err != nil {
		return "", err
	}

	accounts, err := f.backend.Accounts(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		// The account exists even if the refresh failed; fall back to a
		// synthetic entry so it can be selected.
		f.catalogs.Accounts = append(f.catalogs.Accounts, models.Option{ID: id, Label: name})
	} else {
		f.catalogs.Accounts = accounts
	}
	f.state.AccountID = id
	f.log.Info("account created inline", logging.F(logging.FieldAccountID, id))
	return id, nil
}

// State returns a copy of the current field values.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Catalogs returns the current catalog snapshot.
func (f *Form) Catalogs() models.CatalogSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.catalogs
}

// CategoryOptions returns the category list scoped to the selected type.
// Call Settle first if a type was just selected.
func (f *Form) CategoryOptions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.categories...)
}

// CategoryFromBudget reports whether the current category was derived
// from a budget selection.
func (f *Form) CategoryFromBudget() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categoryFromBudget
}

// Advisories returns the non-blocking messages accumulated so far.
func (f *Form) Advisories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.advisories...)
}

// ExistingReceipts returns the receipts persisted on the transaction
// being edited.
func (f *Form) ExistingReceipts() []models.Receipt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Receipt{}, f.existingReceipts...)
}

// PendingReceipts lists attachments staged for upload on save.
func (f *Form) PendingReceipts() []models.PendingReceipt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PendingReceipt{}, f.pendingReceipts...)
}

func (f *Form) addAdvisoryLocked(message string) {
	if !containsString(f.advisories, message) {
		f.advisories = append(f.advisories, message)
	}
}
