// Package client implements the JSON REST client for the Finanzas
// backend. Responses are decoded into typed schemas and validated at the
// boundary: a payload that decodes but is missing required fields fails
// fast with an apperror.ShapeError instead of flowing partially filled
// values into the form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
)

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     logging.Logger
}

// New creates a Client for the given base URL. Every request carries the
// caller's context; the timeout bounds the whole exchange.
func New(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// doJSON performs a request with an optional JSON body and decodes the
// JSON response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &apperror.RequestError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &apperror.RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("backend request completed",
		logging.F(logging.FieldEndpoint, fmt.Sprintf("%s %s", method, path)),
		logging.F(logging.FieldStatus, resp.StatusCode),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperror.RequestError{Method: method, Path: path, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperror.ShapeError{Endpoint: path, Field: "body", Reason: "is not valid JSON: " + err.Error()}
	}
	return nil
}
