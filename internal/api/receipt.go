package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
)

// MyReceipts lists the caller's uploaded receipts.
func (c *Client) MyReceipts(ctx context.Context, opts ...CallOption) ([]ReceiptItem, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/receipt/my", opts)
	if err != nil {
		return nil, fmt.Errorf("my receipts: %w", err)
	}
	var receipts []ReceiptItem
	if err := decodeData(envelope, &receipts); err != nil {
		return nil, fmt.Errorf("my receipts: %w", err)
	}
	return receipts, nil
}

// PendingReceipts lists receipts awaiting admin approval.
func (c *Client) PendingReceipts(ctx context.Context, opts ...CallOption) ([]PendingReceiptItem, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/receipt/pending", opts)
	if err != nil {
		return nil, fmt.Errorf("pending receipts: %w", err)
	}
	var receipts []PendingReceiptItem
	if err := decodeData(envelope, &receipts); err != nil {
		return nil, fmt.Errorf("pending receipts: %w", err)
	}
	return receipts, nil
}

// UploadReceipt submits a payment receipt as a multipart form with the
// file under field "Image" and the amount under field "amount" as a
// decimal string. filename selects the part's reported name; reader
// supplies the bytes.
func (c *Client) UploadReceipt(ctx context.Context, filename string, reader io.Reader, amount float64, opts ...CallOption) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("Image", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}
	if _, err := io.Copy(part, reader); err != nil {
		return "", fmt.Errorf("upload receipt: reading file: %w", err)
	}
	if err := writer.WriteField("amount", strconv.FormatFloat(amount, 'f', -1, 64)); err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/api/v1/receipt/upload", writer.FormDataContentType(), &body, buildCallOptions(opts))
	if err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}
	envelope, err := parseEnvelope(raw)
	if err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}
	return envelope.Message, nil
}

// ApproveReceipt marks a pending receipt as approved, with an optional
// reason recorded against the approval.
func (c *Client) ApproveReceipt(ctx context.Context, receiptID, reason string, opts ...CallOption) (string, error) {
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}

	path := "/api/v1/receipt/" + url.PathEscape(receiptID) + "/approve"
	envelope, err := c.patchEnvelope(ctx, path, body, opts)
	if err != nil {
		return "", fmt.Errorf("approve receipt %s: %w", receiptID, err)
	}
	return envelope.Message, nil
}
