package form

import (
	"context"
	"testing"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editFixture() models.Transaction {
	return models.Transaction{
		ID:          "tx1",
		Description: "Compra del mes",
		Amount:      decimal.RequireFromString("1000.00"),
		Date:        "2026-08-10",
		AccountID:   "a1",
		Type:        "t-gasto",
		Category:    models.CategoryMultiple,
		Splits: []models.Split{
			{Category: "Supermercado", Amount: decimal.RequireFromString("600.00")},
			{Category: "Restaurantes", Amount: decimal.RequireFromString("400.00")},
		},
		Tags: []string{"hogar", "comida"},
		Receipts: []models.Receipt{
			{ID: "r1", Filename: "ticket.pdf", URL: "/receipts/r1", Size: 1024, UploadedAt: "2026-08-10"},
		},
	}
}

func openEdit(t *testing.T, backend *MockBackend, tx models.Transaction) *Form {
	t.Helper()
	backend.Transactions[tx.ID] = tx
	f, err := OpenForEdit(context.Background(), backend, &logging.MockLogger{},
		Options{ReferenceDate: "2026-08-01"}, tx.ID)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestDirty_UnchangedSubmissionBlocked(t *testing.T) {
	backend := fixtureBackend()
	f := openEdit(t, backend, editFixture())

	_, err := f.Submit(context.Background())
	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "no se han realizado cambios", valErr.Message)

	// No network write was issued.
	assert.Empty(t, backend.UpdatedPayloads)
	assert.Empty(t, backend.CreatedPayloads)
}

func TestDirty_TrimmedDescriptionStillUnchanged(t *testing.T) {
	backend := fixtureBackend()
	f := openEdit(t, backend, editFixture())

	f.SetDescription("  Compra del mes  ")

	_, err := f.Submit(context.Background())
	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "no se han realizado cambios", valErr.Message)
}

func TestDirty_ReorderedTagsStillUnchanged(t *testing.T) {
	backend := fixtureBackend()
	f := openEdit(t, backend, editFixture())

	f.RemoveLastTag()
	f.RemoveLastTag()
	f.AddTag("Comida")
	f.AddTag("#HOGAR")

	_, err := f.Submit(context.Background())
	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "no se han realizado cambios", valErr.Message)
}

func TestDirty_ReorderedSplitsStillUnchanged(t *testing.T) {
	backend := fixtureBackend()
	f := openEdit(t, backend, editFixture())

	rows := f.SplitRows()
	require.Len(t, rows, 2)
	require.NoError(t, f.SetSplitRow(rows[0].LocalID, "Restaurantes", "400.00"))
	require.NoError(t, f.SetSplitRow(rows[1].LocalID, "Supermercado", "600.00"))

	_, err := f.Submit(context.Background())
	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "no se han realizado cambios", valErr.Message)
}

func TestDirty_AmountChangeIsDetected(t *testing.T) {
	backend := fixtureBackend()
	f := openEdit(t, backend, editFixture())

	f.SetAmount("1100.00")
	rows := f.SplitRows()
	require.NoError(t, f.SetSplitRow(rows[0].LocalID, "Supermercado", "700.00"))

	result, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tx1", result.TransactionID)
	assert.Contains(t, backend.UpdatedPayloads, "tx1")
}

func TestDirty_DescriptionChangeIsDetected(t *testing.T) {
	backend := fixtureBackend()
	f := openEdit(t, backend, editFixture())

	f.SetDescription("Compra del mes pasado")

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Contains(t, backend.UpdatedPayloads, "tx1")
}

func TestRoundTrip_LoadThenPreviewMatchesOriginal(t *testing.T) {
	backend := fixtureBackend()
	original := editFixture()
	f := openEdit(t, backend, original)

	payload, err := f.PreviewPayload()
	require.NoError(t, err)

	assert.Equal(t, original.Description, payload.Description)
	assert.True(t, payload.Amount.Equal(original.Amount))
	assert.Equal(t, original.Date, payload.Date)
	assert.Equal(t, original.AccountID, payload.AccountID)
	assert.Equal(t, original.Type, payload.Type)
	assert.Equal(t, original.Category, payload.Category)
	assert.Equal(t, original.IsTransfer, payload.IsTransfer)
	assert.ElementsMatch(t, original.Tags, payload.Tags)
	require.Len(t, payload.Splits, len(original.Splits))
	for i := range payload.Splits {
		assert.Equal(t, original.Splits[i].Category, payload.Splits[i].Category)
		assert.True(t, payload.Splits[i].Amount.Equal(original.Splits[i].Amount))
	}
}
