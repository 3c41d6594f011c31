package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"finanzas/txform/internal/apperror"
	"finanzas/txform/internal/logging"
)

// UploadReceipt posts a local file as a receipt for an already-saved
// transaction (multipart: file + transaction_id).
func (c *Client) UploadReceipt(ctx context.Context, transactionID, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open receipt %s: %w", filePath, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read receipt %s: %w", filePath, err)
	}
	if err := writer.WriteField("transaction_id", transactionID); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/receipts", &buf)
	if err != nil {
		return &apperror.RequestError{Method: http.MethodPost, Path: "/receipts", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &apperror.RequestError{Method: http.MethodPost, Path: "/receipts", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperror.RequestError{Method: http.MethodPost, Path: "/receipts", Status: resp.StatusCode}
	}

	c.log.Debug("receipt uploaded",
		logging.F(logging.FieldTransactionID, transactionID),
		logging.F(logging.FieldFile, filePath))
	return nil
}

// DeleteReceipt removes a persisted receipt.
func (c *Client) DeleteReceipt(ctx context.Context, id string) error {
	path := "/receipts/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.log.Debug("receipt deleted", logging.F(logging.FieldReceiptID, id))
	return nil
}
