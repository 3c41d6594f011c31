package form

import (
	"context"
	"errors"
	"testing"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureBackend() *MockBackend {
	backend := NewMockBackend()
	backend.AccountsList = []models.Option{
		{ID: "a1", Label: "Cuenta corriente"},
		{ID: "a2", Label: "Efectivo"},
	}
	backend.TypesList = []models.Option{
		{ID: "t-gasto", Label: "Gasto"},
		{ID: "t-ingreso", Label: "Ingreso"},
		{ID: "t-ahorro", Label: "Ahorro programado"},
		{ID: "t-deuda", Label: "Pago de deuda"},
		{ID: "t-transfer", Label: "Transferencia interna"},
		{ID: "t-port", Label: "Portafolio de inversión"},
	}
	backend.CategoriesByType = map[string][]string{
		"t-gasto":   {"Supermercado", "Restaurantes", "Servicios"},
		"t-ingreso": {"Salario"},
		"t-ahorro":  {"Ahorro"},
		"t-deuda":   {"Deudas"},
		"t-port":    {"Inversiones"},
	}
	backend.GoalsList = []models.Option{{ID: "g1", Label: "Vacaciones"}}
	backend.DebtsList = []models.Option{{ID: "d1", Label: "Tarjeta de crédito"}}
	backend.BudgetList = []models.BudgetEntry{
		{ID: "b1", Category: "Supermercado", Type: "Gasto", Planned: decimal.NewFromInt(300)},
		{ID: "b2", Category: "Gimnasio", Type: "Suscripciones", Planned: decimal.NewFromInt(50)},
		{ID: "b3", Category: "Ahorro", Type: "Ahorro programado", GoalID: "g1"},
	}
	backend.TagsList = []string{"viaje", "hogar", "trabajo", "salud", "comida", "auto", "regalo", "mascota", "otros"}
	return backend
}

func openCreate(t *testing.T, backend *MockBackend) *Form {
	t.Helper()
	f, err := Open(context.Background(), backend, &logging.MockLogger{}, Options{ReferenceDate: "2026-08-01"})
	require.NoError(t, err)
	return f
}

func TestOpen_RequiredCatalogFailureIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MockBackend)
		catalog string
	}{
		{name: "accounts", mutate: func(b *MockBackend) { b.AccountsError = errors.New("boom") }, catalog: "accounts"},
		{name: "types", mutate: func(b *MockBackend) { b.TypesError = errors.New("boom") }, catalog: "types"},
		{name: "budget", mutate: func(b *MockBackend) { b.BudgetError = errors.New("boom") }, catalog: "budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := fixtureBackend()
			tt.mutate(backend)

			_, err := Open(context.Background(), backend, &logging.MockLogger{}, Options{})
			require.Error(t, err)
			var catErr *apperror.CatalogError
			require.ErrorAs(t, err, &catErr)
			assert.True(t, catErr.Fatal)
			assert.Equal(t, tt.catalog, catErr.Catalog)
		})
	}
}

func TestOpen_OptionalCatalogDegrades(t *testing.T) {
	backend := fixtureBackend()
	backend.GoalsError = errors.New("boom")
	backend.TagsError = errors.New("boom")

	f := openCreate(t, backend)
	defer f.Close()

	catalogs := f.Catalogs()
	assert.Empty(t, catalogs.Goals)
	assert.Empty(t, catalogs.Tags)
	assert.NotEmpty(t, catalogs.Accounts)
	assert.Contains(t, f.Advisories(), "no se pudieron cargar las metas")
}

func TestStaleCategoryFetchIsDiscardedAfterClose(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)

	release := make(chan struct{})
	backend.CategoriesDelay = map[string]chan struct{}{"t-gasto": release}

	require.NoError(t, f.SelectType(context.Background(), "t-gasto"))
	f.Close()
	close(release)
	f.Settle()

	// The late resolve must not have touched the discarded state.
	assert.Empty(t, f.CategoryOptions())
}

func TestStaleCategoryFetchIsDiscardedAfterRetarget(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	release := make(chan struct{})
	backend.CategoriesDelay = map[string]chan struct{}{"t-gasto": release}
	require.NoError(t, f.SelectType(context.Background(), "t-gasto"))

	// Retarget before the first fetch resolves.
	require.NoError(t, f.SelectType(context.Background(), "t-ingreso"))
	close(release)
	f.Settle()

	assert.Equal(t, []string{"Salario"}, f.CategoryOptions())
}

func TestCreateAccountInline(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	id, err := f.CreateAccountInline(context.Background(), "Ahorros")
	require.NoError(t, err)
	assert.Equal(t, id, f.State().AccountID)

	snap := f.Catalogs()
	_, ok := snap.AccountByID(id)
	assert.True(t, ok)
}

func TestSelectAccount_Unknown(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	err := f.SelectAccount("nope")
	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.NoError(t, f.SelectAccount("a1"))
}

func TestSetPortfolioDirection(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	assert.Error(t, f.SetPortfolioDirection("Mantener"))
	assert.NoError(t, f.SetPortfolioDirection(models.DirectionBuy))
	assert.NoError(t, f.SetPortfolioDirection(models.DirectionSell))
}
