package api

import (
	"context"
	"fmt"
	"net/url"
)

// Catalog returns the public device catalog and plan rules. No token is
// required.
func (c *Client) Catalog(ctx context.Context, opts ...CallOption) (*Catalog, error) {
	envelope, err := c.getEnvelope(ctx, "/api/v1/public/easybuy-catalog", opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	var catalog Catalog
	if err := decodeData(envelope, &catalog); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &catalog, nil
}

// SubmitPublicRequest files an anonymous purchase request. The backend
// replies with a confirmation message and sends a verification mail.
func (c *Client) SubmitPublicRequest(ctx context.Context, request CreatePublicRequest, opts ...CallOption) (string, error) {
	envelope, err := c.postEnvelope(ctx, "/api/v1/public/easybuy-requests", request, opts)
	if err != nil {
		return "", fmt.Errorf("submit public request: %w", err)
	}
	return envelope.Message, nil
}

// VerifyPublicRequest confirms a mailed verification token. On success
// the backend hands back a WhatsApp contact link.
func (c *Client) VerifyPublicRequest(ctx context.Context, token string, opts ...CallOption) (whatsappURL, message string, err error) {
	path := "/api/v1/public/easybuy-requests/verify?token=" + url.QueryEscape(token)
	envelope, err := c.getEnvelope(ctx, path, opts)
	if err != nil {
		return "", "", fmt.Errorf("verify public request: %w", err)
	}

	var data struct {
		WhatsappURL string `json:"whatsappUrl"`
	}
	if err := decodeData(envelope, &data); err != nil {
		return "", "", fmt.Errorf("verify public request: %w", err)
	}
	return data.WhatsappURL, envelope.Message, nil
}

// ResendVerification asks the backend to mail a fresh verification link
// for a pending public request.
func (c *Client) ResendVerification(ctx context.Context, email string, opts ...CallOption) (string, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	envelope, err := c.postEnvelope(ctx, "/api/v1/public/easybuy-requests/resend-verification", body, opts)
	if err != nil {
		return "", fmt.Errorf("resend verification: %w", err)
	}
	return envelope.Message, nil
}
