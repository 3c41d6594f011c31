package client

import (
	"context"
	"fmt"
	"net/url"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/models"
)

// optionSchema is the wire shape of catalog entries ({id, name}).
type optionSchema struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toOptions(endpoint string, raw []optionSchema) ([]models.Option, error) {
	options := make([]models.Option, 0, len(raw))
	for i, item := range raw {
		if item.ID == "" {
			return nil, &apperror.ShapeError{Endpoint: endpoint, Field: fmt.Sprintf("[%d].id", i), Reason: "is empty"}
		}
		if item.Name == "" {
			return nil, &apperror.ShapeError{Endpoint: endpoint, Field: fmt.Sprintf("[%d].name", i), Reason: "is empty"}
		}
		options = append(options, models.Option{ID: item.ID, Label: item.Name})
	}
	return options, nil
}

// Accounts fetches the account catalog.
func (c *Client) Accounts(ctx context.Context) ([]models.Option, error) {
	var raw []optionSchema
	if err := c.getJSON(ctx, "/accounts", &raw); err != nil {
		return nil, err
	}
	return toOptions("/accounts", raw)
}

// TransactionTypes fetches the transaction type catalog.
func (c *Client) TransactionTypes(ctx context.Context) ([]models.Option, error) {
	var raw []optionSchema
	if err := c.getJSON(ctx, "/parameters/transaction-types", &raw); err != nil {
		return nil, err
	}
	return toOptions("/parameters/transaction-types", raw)
}

// Categories fetches the category names scoped to a transaction type.
func (c *Client) Categories(ctx context.Context, typeID string) ([]string, error) {
	path := "/parameters/categories/" + url.PathEscape(typeID)
	var categories []string
	if err := c.getJSON(ctx, path, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Goals fetches the savings goal catalog.
func (c *Client) Goals(ctx context.Context) ([]models.Option, error) {
	var raw []optionSchema
	if err := c.getJSON(ctx, "/goals", &raw); err != nil {
		return nil, err
	}
	return toOptions("/goals", raw)
}

// Debts fetches the debt catalog.
func (c *Client) Debts(ctx context.Context) ([]models.Option, error) {
	var raw []optionSchema
	if err := c.getJSON(ctx, "/debts", &raw); err != nil {
		return nil, err
	}
	return toOptions("/debts", raw)
}

// Budget fetches the active budget entries for the given reference date
// (YYYY-MM-DD).
func (c *Client) Budget(ctx context.Context, referenceDate string) ([]models.BudgetEntry, error) {
	path := "/budget?status=active&reference_date=" + url.QueryEscape(referenceDate)
	var entries []models.BudgetEntry
	if err := c.getJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	for i, entry := range entries {
		if entry.ID == "" {
			return nil, &apperror.ShapeError{Endpoint: "/budget", Field: fmt.Sprintf("[%d].id", i), Reason: "is empty"}
		}
		if entry.Category == "" {
			return nil, &apperror.ShapeError{Endpoint: "/budget", Field: fmt.Sprintf("[%d].category", i), Reason: "is empty"}
		}
	}
	return entries, nil
}

// Tags fetches the known tag pool.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.getJSON(ctx, "/tags", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
