package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// CreateAccountRequest is the payload for registering an admin account or
// creating a customer account under an admin.
type CreateAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"Password"`
}

// Login authenticates and returns the signed session token carried in the
// success envelope's data field, plus the server's message.
func (c *Client) Login(ctx context.Context, email, password string, opts ...CallOption) (string, string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	envelope, err := c.postEnvelope(ctx, "/api/v1/user/login-user", body, opts)
	if err != nil {
		return "", "", fmt.Errorf("login: %w", err)
	}

	var token string
	if err := decodeData(envelope, &token); err != nil {
		return "", "", fmt.Errorf("login: %w", err)
	}
	if token == "" {
		return "", "", fmt.Errorf("login: no token in response")
	}
	return token, envelope.Message, nil
}

// RegisterAdmin creates a new admin account.
func (c *Client) RegisterAdmin(ctx context.Context, request CreateAccountRequest, opts ...CallOption) (string, error) {
	envelope, err := c.postEnvelope(ctx, "/api/v1/user/createadmin", request, opts)
	if err != nil {
		return "", fmt.Errorf("register admin: %w", err)
	}
	return envelope.Message, nil
}

// CreateUser creates a customer account owned by the calling admin.
func (c *Client) CreateUser(ctx context.Context, request CreateAccountRequest, opts ...CallOption) (string, error) {
	envelope, err := c.postEnvelope(ctx, "/api/v1/user/createuser", request, opts)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return envelope.Message, nil
}

// GetCurrentUser returns the account behind the current session token.
// Route guards use this to confirm the locally decoded role against the
// server.
func (c *Client) GetCurrentUser(ctx context.Context, opts ...CallOption) (*CurrentUser, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/user/getcurrentuser", opts)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	var user CurrentUser
	if err := decodeData(envelope, &user); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &user, nil
}

// GetProfile returns the profile view of the current account.
func (c *Client) GetProfile(ctx context.Context, opts ...CallOption) (*Profile, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/user/profile", opts)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	var profile Profile
	if err := decodeData(envelope, &profile); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &profile, nil
}

// EasyBoughtItems lists the caller's purchase agreements.
func (c *Client) EasyBoughtItems(ctx context.Context, opts ...CallOption) ([]EasyBoughtItem, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/user/geteasyboughtitems", opts)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	var items []EasyBoughtItem
	if err := decodeData(envelope, &items); err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	return items, nil
}

// CreateEasyBoughtItem creates a purchase agreement for a customer.
func (c *Client) CreateEasyBoughtItem(ctx context.Context, request CreateItemRequest, opts ...CallOption) (string, error) {
	envelope, err := c.postEnvelope(ctx, "/api/v1/user/createeasyboughtitem", request, opts)
	if err != nil {
		return "", fmt.Errorf("create item: %w", err)
	}
	return envelope.Message, nil
}

// GetDashboard returns the caller's plan position summary. Unlike the
// /api/v1 routes, the dashboard responds with a bare body rather than the
// success envelope.
func (c *Client) GetDashboard(ctx context.Context, opts ...CallOption) (*Dashboard, error) {
	raw, err := c.get(ctx, "/api/dashboard", opts)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	var dashboard Dashboard
	if err := json.Unmarshal(raw, &dashboard); err != nil {
		return nil, fmt.Errorf("dashboard: decoding response: %w", err)
	}
	return &dashboard, nil
}
