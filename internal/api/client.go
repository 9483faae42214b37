// Package api is the typed HTTP client for the EasyBuy Tracker backend.
// Every request goes through one wrapper that attaches the session token,
// tracks the global loading indicator, and normalizes failures into a
// single user-facing notification. Endpoint methods mirror the backend's
// /api/v1 routes using the client's own wire types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/easybuy-tracker/internal/loading"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/observability"
	"github.com/spec-kit/easybuy-tracker/internal/session"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

const (
	// fallbackErrorMessage is shown when a failure carries no usable
	// message of its own.
	fallbackErrorMessage = "Request failed"

	// markupErrorMessage replaces error bodies that are HTML rather than
	// the JSON error envelope, so the user never sees raw markup.
	markupErrorMessage = "The server returned an unexpected response. It may be restarting, try again shortly."
)

// Client is the shared backend client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    *session.Store
	loading    *loading.Counter
	notifier   notify.Notifier
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// Dependencies wires the client to the process-wide session store, loading
// counter, and notifier singletons.
type Dependencies struct {
	Session  *session.Store
	Loading  *loading.Counter
	Notifier notify.Notifier
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// New creates a Client for the given backend base URL.
func New(baseURL string, timeout time.Duration, deps Dependencies) *Client {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    deps.Session,
		loading:    deps.Loading,
		notifier:   deps.Notifier,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// NewForTesting creates a Client with a custom http.Client. Used by tests
// that point the client at an httptest.Server.
func NewForTesting(baseURL string, httpClient *http.Client, deps Dependencies) *Client {
	client := New(baseURL, 0, deps)
	client.httpClient = httpClient
	return client
}

// do runs one request through the full lifecycle: loading accounting,
// bearer auth, status handling, and error notification. It returns the raw
// success body; callers decode it. The loader release is deferred
// immediately after acquisition so every exit path, success, failure,
// cancellation, even a panic in the transport, releases exactly once.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, opts callOptions) ([]byte, error) {
	end := func() {}
	if c.loading != nil && !opts.suppressLoader {
		end = c.loading.Begin()
	}
	defer end()

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, util.NewTransportError(err)
	}
	if token, ok := c.session.Token(); ok && token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			// Client-initiated cancellation: expected, never notified.
			return nil, ctx.Err()
		}
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		c.metrics.RecordError(path, method, "TRANSPORT")
		c.notifyError(opts, err.Error())
		return nil, util.NewTransportError(err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.metrics.RecordError(path, method, "TRANSPORT")
		c.notifyError(opts, err.Error())
		return nil, util.NewTransportError(err)
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(started)))
	c.metrics.RecordRequest(path, method, response.StatusCode, time.Since(started))

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		message := resolveErrorMessage(raw)
		c.metrics.RecordError(path, method, codeForStatus(response.StatusCode))
		c.notifyError(opts, message)
		return nil, util.NewRequestError(codeForStatus(response.StatusCode), message, response.StatusCode)
	}

	return raw, nil
}

// parseEnvelope decodes the standard success envelope. An empty body is a
// valid empty envelope.
func parseEnvelope(raw []byte) (*successEnvelope, error) {
	envelope := &successEnvelope{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return envelope, nil
	}
	if err := json.Unmarshal(raw, envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return envelope, nil
}

// resolveErrorMessage picks the user-facing message for a non-2xx body:
// the envelope's message field, then its error field, then the hard-coded
// fallback. An HTML body gets an explanatory message instead of markup.
func resolveErrorMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return markupErrorMessage
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fallbackErrorMessage
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "HTTP_ERROR"
	}
}

func (c *Client) notifyError(opts callOptions, message string) {
	if c.notifier == nil || opts.suppressNotify {
		return
	}
	notify.Error(c.notifier, message)
}

// get issues a GET request.
func (c *Client) get(ctx context.Context, path string, opts []CallOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, "", nil, buildCallOptions(opts))
}

// postJSON issues a POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body any, opts []CallOption) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(encoded), buildCallOptions(opts))
}

// patchJSON issues a PATCH with a JSON body.
func (c *Client) patchJSON(ctx context.Context, path string, body any, opts []CallOption) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPatch, path, "application/json", bytes.NewReader(encoded), buildCallOptions(opts))
}

// deleteJSON issues a DELETE with a JSON body.
func (c *Client) deleteJSON(ctx context.Context, path string, body any, opts []CallOption) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodDelete, path, "application/json", bytes.NewReader(encoded), buildCallOptions(opts))
}

// getEnvelope issues a GET and decodes the success envelope.
func (c *Client) getEnvelope(ctx context.Context, path string, opts []CallOption) (*successEnvelope, error) {
	raw, err := c.get(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(raw)
}

// postEnvelope issues a JSON POST and decodes the success envelope.
func (c *Client) postEnvelope(ctx context.Context, path string, body any, opts []CallOption) (*successEnvelope, error) {
	raw, err := c.postJSON(ctx, path, body, opts)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(raw)
}

// patchEnvelope issues a JSON PATCH and decodes the success envelope.
func (c *Client) patchEnvelope(ctx context.Context, path string, body any, opts []CallOption) (*successEnvelope, error) {
	raw, err := c.patchJSON(ctx, path, body, opts)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(raw)
}

// deleteEnvelope issues a JSON DELETE and decodes the success envelope.
func (c *Client) deleteEnvelope(ctx context.Context, path string, body any, opts []CallOption) (*successEnvelope, error) {
	raw, err := c.deleteJSON(ctx, path, body, opts)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(raw)
}

// decodeData unmarshals the envelope's data field into out. An absent data
// field leaves out at its zero value, which list callers treat as empty.
func decodeData(envelope *successEnvelope, out any) error {
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
