package form

import (
	"context"
	"testing"

	"finanzas/txform/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindForLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected TypeKind
	}{
		{label: "Gasto", expected: KindStandard},
		{label: "Ingreso", expected: KindStandard},
		{label: "Ahorro programado", expected: KindGoal},
		{label: "AHORRO", expected: KindGoal},
		{label: "Pago de deuda", expected: KindDebt},
		{label: "Transferencia interna", expected: KindTransfer},
		{label: "Transferencia Interna ", expected: KindTransfer},
		{label: "Portafolio de inversión", expected: KindPortfolio},
		{label: "", expected: KindStandard},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindForLabel(tt.label))
		})
	}
}

func TestSelectType_FetchesScopedCategories(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	require.NoError(t, f.SelectType(context.Background(), "t-gasto"))
	f.Settle()

	assert.Equal(t, []string{"Supermercado", "Restaurantes", "Servicios"}, f.CategoryOptions())
	assert.Empty(t, f.State().Category)
}

func TestSelectType_SwitchClearsPreviousCategory(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	require.NoError(t, f.SelectType(context.Background(), "t-gasto"))
	f.Settle()
	f.SelectCategory("Supermercado")

	require.NoError(t, f.SelectType(context.Background(), "t-ingreso"))
	f.Settle()

	assert.Empty(t, f.State().Category)
	assert.Equal(t, []string{"Salario"}, f.CategoryOptions())
}

func TestSelectType_TransferForcesSentinel(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	f.SetSplitMode(true)
	require.NoError(t, f.SelectType(context.Background(), "t-transfer"))
	f.Settle()

	state := f.State()
	assert.True(t, state.IsTransfer)
	assert.Equal(t, models.CategoryTransfer, state.Category)
	assert.Empty(t, f.CategoryOptions())
	assert.False(t, f.SplitMode())
	assert.Empty(t, f.SplitRows())
}

func TestSelectType_PortfolioDisallowsSplits(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	f.SetSplitMode(true)
	require.NoError(t, f.SelectType(context.Background(), "t-port"))
	f.Settle()

	assert.False(t, f.SplitMode())
	assert.False(t, f.State().IsTransfer)
}

func TestSelectType_GoalWithoutOptionsIsAdvisoryOnly(t *testing.T) {
	backend := fixtureBackend()
	backend.GoalsList = nil
	f := openCreate(t, backend)
	defer f.Close()

	require.NoError(t, f.SelectType(context.Background(), "t-ahorro"))

	// The type selection itself stays valid.
	assert.Equal(t, "t-ahorro", f.State().TypeID)
	assert.Contains(t, f.Advisories(), models.AdvisoryNoGoals)
}

func TestSelectType_DebtWithoutOptionsIsAdvisoryOnly(t *testing.T) {
	backend := fixtureBackend()
	backend.DebtsList = nil
	f := openCreate(t, backend)
	defer f.Close()

	require.NoError(t, f.SelectType(context.Background(), "t-deuda"))
	assert.Equal(t, "t-deuda", f.State().TypeID)
	assert.Contains(t, f.Advisories(), models.AdvisoryNoDebts)
}

func TestSelectType_CategoryFetchFailureIsNotFatal(t *testing.T) {
	backend := fixtureBackend()
	backend.CategoriesError = assert.AnError
	f := openCreate(t, backend)
	defer f.Close()

	require.NoError(t, f.SelectType(context.Background(), "t-gasto"))
	f.Settle()

	assert.Empty(t, f.CategoryOptions())
	assert.Contains(t, f.Advisories(), "no se pudieron cargar las categorías")
	assert.Empty(t, f.State().Category)
}

func TestSelectType_Unknown(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	assert.Error(t, f.SelectType(context.Background(), "missing"))
}

func TestSelectType_SwitchAwayClearsGoal(t *testing.T) {
	backend := fixtureBackend()
	f := openCreate(t, backend)
	defer f.Close()

	require.NoError(t, f.SelectType(context.Background(), "t-ahorro"))
	require.NoError(t, f.SelectGoal("g1"))
	require.NoError(t, f.SelectType(context.Background(), "t-gasto"))

	assert.Empty(t, f.State().GoalID)
}
