package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
	"finanzas/txform/internal/models"
)

// Transactions fetches the full transaction list.
func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := c.getJSON(ctx, "/transactions", &txs); err != nil {
		return nil, err
	}
	for i, tx := range txs {
		if tx.ID == "" {
			return nil, &apperror.ShapeError{Endpoint: "/transactions", Field: fmt.Sprintf("[%d].id", i), Reason: "is empty"}
		}
	}
	return txs, nil
}

// TransactionByID fetches a single transaction for edit mode.
func (c *Client) TransactionByID(ctx context.Context, id string) (models.Transaction, error) {
	path := "/transactions/" + url.PathEscape(id)
	var tx models.Transaction
	if err := c.getJSON(ctx, path, &tx); err != nil {
		return models.Transaction{}, err
	}
	if tx.ID == "" {
		return models.Transaction{}, &apperror.ShapeError{Endpoint: path, Field: "id", Reason: "is empty"}
	}
	return tx, nil
}

// CreateTransaction submits a new transaction and returns its id.
func (c *Client) CreateTransaction(ctx context.Context, payload models.SubmitPayload) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/transactions", payload, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", &apperror.ShapeError{Endpoint: "/transactions", Field: "id", Reason: "is empty"}
	}
	c.log.Info("transaction created", logging.F(logging.FieldTransactionID, created.ID))
	return created.ID, nil
}

// UpdateTransaction overwrites an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, payload models.SubmitPayload) error {
	path := "/transactions/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPut, path, payload, nil); err != nil {
		return err
	}
	c.log.Info("transaction updated", logging.F(logging.FieldTransactionID, id))
	return nil
}

// CreateAccount creates an account inline and returns the new id, so the
// form can select it immediately.
func (c *Client) CreateAccount(ctx context.Context, name string) (string, error) {
	body := map[string]string{"name": name}
	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/accounts", body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", &apperror.ShapeError{Endpoint: "/accounts", Field: "id", Reason: "is empty"}
	}
	return created.ID, nil
}
