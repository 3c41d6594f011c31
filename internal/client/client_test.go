package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, &logging.MockLogger{}), server
}

func TestAccounts(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a1","name":"Cuenta corriente"},{"id":"a2","name":"Efectivo"}]`))
	}))

	accounts, err := c.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, models.Option{ID: "a1", Label: "Cuenta corriente"}, accounts[0])
}

func TestAccounts_ShapeMismatch(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"","name":"Cuenta"}]`))
	}))

	_, err := c.Accounts(context.Background())
	require.Error(t, err)
	var shapeErr *apperror.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "[0].id", shapeErr.Field)
}

func TestAccounts_InvalidJSON(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))

	_, err := c.Accounts(context.Background())
	var shapeErr *apperror.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestAccounts_ServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Accounts(context.Background())
	var reqErr *apperror.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
}

func TestCategories_ScopedPath(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parameters/categories/t1", r.URL.Path)
		_, _ = w.Write([]byte(`["Supermercado","Restaurantes"]`))
	}))

	categories, err := c.Categories(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Supermercado", "Restaurantes"}, categories)
}

func TestBudget_QueryParameters(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/budget", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("reference_date"))
		_, _ = w.Write([]byte(`[{"id":"b1","category":"Supermercado","type":"Gasto","planned":"300.00","actual":"120.50","remaining":"179.50"}]`))
	}))

	entries, err := c.Budget(context.Background(), "2026-08-31")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Supermercado", entries[0].Category)
	assert.True(t, entries[0].Planned.Equal(decimal.NewFromInt(300)))
}

func TestCreateTransaction(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"tx9"}`))
	}))

	id, err := c.CreateTransaction(context.Background(), models.SubmitPayload{
		Description: "Compra semanal",
		Amount:      decimal.NewFromInt(100),
		Date:        "2026-08-30",
		AccountID:   "a1",
		Type:        "t1",
		Category:    "Supermercado",
		Tags:        []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, "tx9", id)
}

func TestUpdateTransaction(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/transactions/tx1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	err := c.UpdateTransaction(context.Background(), "tx1", models.SubmitPayload{Tags: []string{}})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestCreateAccount(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"a7"}`))
	}))

	id, err := c.CreateAccount(context.Background(), "Nueva cuenta")
	require.NoError(t, err)
	assert.Equal(t, "a7", id)
}

func TestUploadReceipt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recibo.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf-bytes"), 0600))

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/receipts", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "tx1", r.FormValue("transaction_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "recibo.pdf", header.Filename)
		w.WriteHeader(http.StatusCreated)
	}))

	assert.NoError(t, c.UploadReceipt(context.Background(), "tx1", path))
}

func TestDeleteReceipt(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/receipts/r1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, c.DeleteReceipt(context.Background(), "r1"))
}

func TestTransactionByID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/tx1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"tx1","description":"Luz","amount":"45.10","date":"2026-08-01","account_id":"a1","type":"t2","category":"Servicios","is_transfer":false,"tags":["hogar"]}`))
	}))

	tx, err := c.TransactionByID(context.Background(), "tx1")
	require.NoError(t, err)
	assert.Equal(t, "Luz", tx.Description)
	assert.Equal(t, []string{"hogar"}, tx.Tags)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("45.10")))
}
