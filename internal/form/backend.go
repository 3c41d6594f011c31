package form

import (
	"context"

	"finanzas/txform/internal/models"
)

// Backend is the slice of the REST API the form consumes. Catalogs are
// read-only reference data; the write operations mirror the form's
// submit and post-save receipt sync.
type Backend interface {
	Accounts(ctx context.Context) ([]models.Option, error)
	TransactionTypes(ctx context.Context) ([]models.Option, error)
	Categories(ctx context.Context, typeID string) ([]string, error)
	Goals(ctx context.Context) ([]models.Option, error)
	Debts(ctx context.Context) ([]models.Option, error)
	Budget(ctx context.Context, referenceDate string) ([]models.BudgetEntry, error)
	Tags(ctx context.Context) ([]string, error)

	TransactionByID(ctx context.Context, id string) (models.Transaction, error)
	CreateTransaction(ctx context.Context, payload models.SubmitPayload) (string, error)
	UpdateTransaction(ctx context.Context, id string, payload models.SubmitPayload) error
	CreateAccount(ctx context.Context, name string) (string, error)

	UploadReceipt(ctx context.Context, transactionID, filePath string) error
	DeleteReceipt(ctx context.Context, id string) error
}
