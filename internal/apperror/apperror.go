// Package apperror defines the typed errors the form engine and the
// backend client surface: blocking validation failures, catalog load
// failures, response shape mismatches, request failures and post-save
// attachment sync failures.
package apperror

import (
	"fmt"
	"strings"
)

// ValidationError represents a blocking field-validation failure. The
// message is user-facing and surfaced before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError for a field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// CatalogError represents a failure loading one of the reference
// catalogs. Fatal catalogs (accounts, types, budget) block the form from
// opening; the rest degrade to empty lists with an advisory.
type CatalogError struct {
	Catalog string
	Fatal   bool
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Fatal {
		return fmt.Sprintf("failed to load required catalog '%s': %v", e.Catalog, e.Err)
	}
	return fmt.Sprintf("failed to load catalog '%s': %v", e.Catalog, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// ShapeError represents a backend response that decoded but did not have
// the expected shape. The client fails fast on these instead of trusting
// partially filled fields.
type ShapeError struct {
	Endpoint string
	Field    string
	Reason   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: field '%s' %s",
		e.Endpoint, e.Field, e.Reason)
}

// RequestError represents an HTTP request that failed or returned a
// non-success status.
type RequestError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// SyncError collects individual failures from the post-save receipt
// batch. It is a warning, not a blocking error: the transaction itself
// was already saved when it is produced.
type SyncError struct {
	Failed int
	Total  int
	Errs   []error
}

func (e *SyncError) Error() string {
	parts := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("%d of %d receipt operations failed: %s",
		e.Failed, e.Total, strings.Join(parts, "; "))
}
