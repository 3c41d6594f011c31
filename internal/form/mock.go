package form

import (
	"context"
	"fmt"
	"sync"

	"finanzas/txform/internal/models"
)

// MockBackend is an in-memory Backend implementation for tests.
type MockBackend struct {
	mu sync.Mutex

	AccountsList []models.Option
	TypesList    []models.Option
	// CategoriesByType maps type id to the scoped category list.
	CategoriesByType map[string][]string
	GoalsList        []models.Option
	DebtsList        []models.Option
	BudgetList       []models.BudgetEntry
	TagsList         []string
	Transactions     map[string]models.Transaction

	// Error hooks for exercising failure paths.
	AccountsError   error
	TypesError      error
	CategoriesError error
	GoalsError      error
	DebtsError      error
	BudgetError     error
	TagsError       error
	CreateError     error
	UpdateError     error
	UploadError     error
	DeleteError     error

	// CategoriesDelay blocks a category fetch for a type id until the
	// test closes the channel, to exercise stale-resolve guards.
	CategoriesDelay map[string]chan struct{}

	CreatedPayloads []models.SubmitPayload
	UpdatedPayloads map[string]models.SubmitPayload
	UploadedFiles   []string
	DeletedReceipts []string
	NextID          string
}

// NewMockBackend creates a MockBackend with empty collections.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		CategoriesByType: map[string][]string{},
		Transactions:     map[string]models.Transaction{},
		UpdatedPayloads:  map[string]models.SubmitPayload{},
		NextID:           "tx-new",
	}
}

func (m *MockBackend) Accounts(ctx context.Context) ([]models.Option, error) {
	if m.AccountsError != nil {
		return nil, m.AccountsError
	}
	return m.AccountsList, nil
}

func (m *MockBackend) TransactionTypes(ctx context.Context) ([]models.Option, error) {
	if m.TypesError != nil {
		return nil, m.TypesError
	}
	return m.TypesList, nil
}

func (m *MockBackend) Categories(ctx context.Context, typeID string) ([]string, error) {
	m.mu.Lock()
	delay := m.CategoriesDelay[typeID]
	m.mu.Unlock()
	if delay != nil {
		<-delay
	}
	if m.CategoriesError != nil {
		return nil, m.CategoriesError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CategoriesByType[typeID], nil
}

func (m *MockBackend) Goals(ctx context.Context) ([]models.Option, error) {
	if m.GoalsError != nil {
		return nil, m.GoalsError
	}
	return m.GoalsList, nil
}

func (m *MockBackend) Debts(ctx context.Context) ([]models.Option, error) {
	if m.DebtsError != nil {
		return nil, m.DebtsError
	}
	return m.DebtsList, nil
}

func (m *MockBackend) Budget(ctx context.Context, referenceDate string) ([]models.BudgetEntry, error) {
	if m.BudgetError != nil {
		return nil, m.BudgetError
	}
	return m.BudgetList, nil
}

func (m *MockBackend) Tags(ctx context.Context) ([]string, error) {
	if m.TagsError != nil {
		return nil, m.TagsError
	}
	return m.TagsList, nil
}

func (m *MockBackend) TransactionByID(ctx context.Context, id string) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.Transactions[id]
	if !ok {
		return models.Transaction{}, fmt.Errorf("transaction %s not found", id)
	}
	return tx, nil
}

func (m *MockBackend) CreateTransaction(ctx context.Context, payload models.SubmitPayload) (string, error) {
	if m.CreateError != nil {
		return "", m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedPayloads = append(m.CreatedPayloads, payload)
	return m.NextID, nil
}

func (m *MockBackend) UpdateTransaction(ctx context.Context, id string, payload models.SubmitPayload) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatedPayloads[id] = payload
	return nil
}

func (m *MockBackend) CreateAccount(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := "acc-" + name
	m.AccountsList = append(m.AccountsList, models.Option{ID: id, Label: name})
	return id, nil
}

func (m *MockBackend) UploadReceipt(ctx context.Context, transactionID, filePath string) error {
	if m.UploadError != nil {
		return m.UploadError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadedFiles = append(m.UploadedFiles, filePath)
	return nil
}

func (m *MockBackend) DeleteReceipt(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletedReceipts = append(m.DeletedReceipts, id)
	return nil
}
