package api

import (
	"context"
	"fmt"
	"net/url"
)

// ReceiptUploadedDatePreview shows the effect of moving a receipt's
// uploaded date before it is applied.
type ReceiptUploadedDatePreview struct {
	ReceiptID          string   `json:"receiptId"`
	CurrentUploadedAt  string   `json:"currentUploadedAt"`
	ProposedUploadedAt string   `json:"proposedUploadedAt"`
	User               string   `json:"user,omitempty"`
	Plan               PlanType `json:"plan,omitempty"`
	Amount             float64  `json:"amount,omitempty"`
	Status             string   `json:"status,omitempty"`
}

// UserNextDueDatePreview shows the effect of moving a customer's next
// payment due date.
type UserNextDueDatePreview struct {
	UserID              string `json:"userId"`
	FullName            string `json:"fullName,omitempty"`
	Email               string `json:"email,omitempty"`
	CurrentNextDueDate  string `json:"currentNextDueDate"`
	ProposedNextDueDate string `json:"proposedNextDueDate"`
}

// ItemCreatedDatePreview shows the effect of moving a purchase
// agreement's created date.
type ItemCreatedDatePreview struct {
	ItemID            string   `json:"itemId"`
	CurrentCreatedAt  string   `json:"currentCreatedAt"`
	ProposedCreatedAt string   `json:"proposedCreatedAt"`
	UserID            string   `json:"userId,omitempty"`
	UserEmail         string   `json:"userEmail,omitempty"`
	IphoneModel       string   `json:"iphoneModel,omitempty"`
	Plan              PlanType `json:"plan,omitempty"`
}

// PreviewReceiptUploadedDate asks the backend what changing a receipt's
// uploaded date to uploadedAt (RFC 3339) would do.
func (c *Client) PreviewReceiptUploadedDate(ctx context.Context, receiptID, uploadedAt string, opts ...CallOption) (*ReceiptUploadedDatePreview, error) {
	path := "/api/v1/superadmin/receipts/" + url.PathEscape(receiptID) +
		"/uploaded-date/preview?uploadedAt=" + url.QueryEscape(uploadedAt)
	envelope, err := c.getEnvelope(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("preview receipt uploaded date %s: %w", receiptID, err)
	}
	var preview ReceiptUploadedDatePreview
	if err := decodeData(envelope, &preview); err != nil {
		return nil, fmt.Errorf("preview receipt uploaded date %s: %w", receiptID, err)
	}
	return &preview, nil
}

// UpdateReceiptUploadedDate applies a previewed uploaded-date change.
// The backend audit logs the change with the reason.
func (c *Client) UpdateReceiptUploadedDate(ctx context.Context, receiptID, uploadedAt, reason string, opts ...CallOption) (string, error) {
	body := struct {
		UploadedAt string `json:"uploadedAt"`
		Reason     string `json:"reason"`
	}{UploadedAt: uploadedAt, Reason: reason}

	path := "/api/v1/superadmin/receipts/" + url.PathEscape(receiptID) + "/uploaded-date"
	envelope, err := c.patchEnvelope(ctx, path, body, opts)
	if err != nil {
		return "", fmt.Errorf("update receipt uploaded date %s: %w", receiptID, err)
	}
	return envelope.Message, nil
}

// PreviewUserNextDueDate asks the backend what moving a customer's next
// due date to nextDueDate (RFC 3339) would do.
func (c *Client) PreviewUserNextDueDate(ctx context.Context, userID, nextDueDate string, opts ...CallOption) (*UserNextDueDatePreview, error) {
	path := "/api/v1/superadmin/users/" + url.PathEscape(userID) +
		"/next-due-date/preview?nextDueDate=" + url.QueryEscape(nextDueDate)
	envelope, err := c.getEnvelope(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("preview user next due date %s: %w", userID, err)
	}
	var preview UserNextDueDatePreview
	if err := decodeData(envelope, &preview); err != nil {
		return nil, fmt.Errorf("preview user next due date %s: %w", userID, err)
	}
	return &preview, nil
}

// UpdateUserNextDueDate applies a previewed next-due-date change.
func (c *Client) UpdateUserNextDueDate(ctx context.Context, userID, nextDueDate, reason string, opts ...CallOption) (string, error) {
	body := struct {
		NextDueDate string `json:"nextDueDate"`
		Reason      string `json:"reason"`
	}{NextDueDate: nextDueDate, Reason: reason}

	path := "/api/v1/superadmin/users/" + url.PathEscape(userID) + "/next-due-date"
	envelope, err := c.patchEnvelope(ctx, path, body, opts)
	if err != nil {
		return "", fmt.Errorf("update user next due date %s: %w", userID, err)
	}
	return envelope.Message, nil
}

// PreviewItemCreatedDate asks the backend what moving an agreement's
// created date to createdAt (RFC 3339) would do.
func (c *Client) PreviewItemCreatedDate(ctx context.Context, itemID, createdAt string, opts ...CallOption) (*ItemCreatedDatePreview, error) {
	path := "/api/v1/superadmin/items/" + url.PathEscape(itemID) +
		"/created-date/preview?createdAt=" + url.QueryEscape(createdAt)
	envelope, err := c.getEnvelope(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("preview item created date %s: %w", itemID, err)
	}
	var preview ItemCreatedDatePreview
	if err := decodeData(envelope, &preview); err != nil {
		return nil, fmt.Errorf("preview item created date %s: %w", itemID, err)
	}
	return &preview, nil
}

// UpdateItemCreatedDate applies a previewed created-date change.
func (c *Client) UpdateItemCreatedDate(ctx context.Context, itemID, createdAt, reason string, opts ...CallOption) (string, error) {
	body := struct {
		CreatedAt string `json:"createdAt"`
		Reason    string `json:"reason"`
	}{CreatedAt: createdAt, Reason: reason}

	path := "/api/v1/superadmin/items/" + url.PathEscape(itemID) + "/created-date"
	envelope, err := c.patchEnvelope(ctx, path, body, opts)
	if err != nil {
		return "", fmt.Errorf("update item created date %s: %w", itemID, err)
	}
	return envelope.Message, nil
}
