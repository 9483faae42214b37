package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// LoginStats returns session counts grouped by role.
func (c *Client) LoginStats(ctx context.Context, opts ...CallOption) (*LoginStats, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/superadmin/login-stats", opts)
	if err != nil {
		return nil, fmt.Errorf("login stats: %w", err)
	}
	var stats LoginStats
	if err := decodeData(envelope, &stats); err != nil {
		return nil, fmt.Errorf("login stats: %w", err)
	}
	return &stats, nil
}

// SuperAdminUsers lists every account with its creator lineage.
func (c *Client) SuperAdminUsers(ctx context.Context, opts ...CallOption) ([]SuperAdminUser, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/superadmin/users", opts)
	if err != nil {
		return nil, fmt.Errorf("superadmin users: %w", err)
	}
	var users []SuperAdminUser
	if err := decodeData(envelope, &users); err != nil {
		return nil, fmt.Errorf("superadmin users: %w", err)
	}
	return users, nil
}

// SuperAdminUsersWithItems lists accounts joined with their purchase
// agreements.
func (c *Client) SuperAdminUsersWithItems(ctx context.Context, opts ...CallOption) ([]SuperAdminUserWithItems, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/superadmin/users-with-items", opts)
	if err != nil {
		return nil, fmt.Errorf("superadmin users with items: %w", err)
	}
	var users []SuperAdminUserWithItems
	if err := decodeData(envelope, &users); err != nil {
		return nil, fmt.Errorf("superadmin users with items: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account, recording an optional reason.
func (c *Client) DeleteUser(ctx context.Context, userID, reason string, opts ...CallOption) (string, error) {
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}

	path := "/api/v1/superadmin/users/" + url.PathEscape(userID)
	envelope, err := c.deleteEnvelope(ctx, path, body, opts)
	if err != nil {
		return "", fmt.Errorf("delete user %s: %w", userID, err)
	}
	return envelope.Message, nil
}

// GetPricing returns the editable device pricing catalog.
func (c *Client) GetPricing(ctx context.Context, opts ...CallOption) (*Catalog, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/superadmin/easybuy-pricing", opts)
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}
	var catalog Catalog
	if err := decodeData(envelope, &catalog); err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}
	return &catalog, nil
}

// PricingUpdate changes one capacity price of one device model.
type PricingUpdate struct {
	Model    string  `json:"model"`
	Capacity string  `json:"capacity"`
	Price    float64 `json:"price"`
}

// UpdatePricing applies one or more capacity price changes.
func (c *Client) UpdatePricing(ctx context.Context, updates []PricingUpdate, opts ...CallOption) (string, error) {
	body := struct {
		Updates []PricingUpdate `json:"updates"`
	}{Updates: updates}

	envelope, err := c.patchEnvelope(ctx, "/api/v1/superadmin/easybuy-pricing", body, opts)
	if err != nil {
		return "", fmt.Errorf("update pricing: %w", err)
	}
	return envelope.Message, nil
}

// PublicRequestFilter narrows the public request listing.
type PublicRequestFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// PublicRequests lists public leads for super-admin review.
func (c *Client) PublicRequests(ctx context.Context, filter PublicRequestFilter, opts ...CallOption) (*PublicRequestList, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/api/v1/superadmin/public-easybuy-requests"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	raw, err := c.get(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("public requests: %w", err)
	}

	// The listing carries pagination next to the standard envelope.
	var body struct {
		Message    string          `json:"message"`
		Data       []PublicRequest `json:"data"`
		Pagination *Pagination     `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("public requests: decoding response: %w", err)
	}
	return &PublicRequestList{Requests: body.Data, Pagination: body.Pagination}, nil
}

// ApprovePublicRequest marks a lead approved.
func (c *Client) ApprovePublicRequest(ctx context.Context, requestID, reason string, opts ...CallOption) (string, error) {
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}

	path := "/api/v1/superadmin/public-easybuy-requests/" + url.PathEscape(requestID) + "/approve"
	envelope, err := c.patchEnvelope(ctx, path, body, opts)
	if err != nil {
		return "", fmt.Errorf("approve public request %s: %w", requestID, err)
	}
	return envelope.Message, nil
}

// RejectPublicRequest marks a lead rejected. Reason is required by the
// backend.
func (c *Client) RejectPublicRequest(ctx context.Context, requestID, reason string, opts ...CallOption) (string, error) {
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}

	path := "/api/v1/superadmin/public-easybuy-requests/" + url.PathEscape(requestID) + "/reject"
	envelope, err := c.patchEnvelope(ctx, path, body, opts)
	if err != nil {
		return "", fmt.Errorf("reject public request %s: %w", requestID, err)
	}
	return envelope.Message, nil
}

// ConvertPublicRequest turns an approved lead into a purchase agreement
// for the named customer account.
func (c *Client) ConvertPublicRequest(ctx context.Context, requestID string, request ConvertPublicRequest, opts ...CallOption) (string, error) {
	path := "/api/v1/superadmin/public-easybuy-requests/" + url.PathEscape(requestID) + "/convert"
	envelope, err := c.postEnvelope(ctx, path, request, opts)
	if err != nil {
		return "", fmt.Errorf("convert public request %s: %w", requestID, err)
	}
	return envelope.Message, nil
}
