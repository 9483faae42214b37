package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// RequestError standardizes failures surfaced by the backend client.
type RequestError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError constructs a RequestError.
func NewRequestError(code, message string, status int) *RequestError {
	return &RequestError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewRequestError("VALIDATION_FAILED", message, http.StatusBadRequest)
}

func NewUnauthorized(message string) error {
	return NewRequestError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewRequestError("FORBIDDEN", message, http.StatusForbidden)
}

func NewTransportError(err error) error {
	return &RequestError{
		Code:    "TRANSPORT",
		Message: "request failed",
		Err:     err,
	}
}

// AsRequestError extracts a RequestError if err wraps one.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err represents a rejected session.
func IsUnauthorized(err error) bool {
	if reqErr, ok := AsRequestError(err); ok {
		return reqErr.HTTPStatus == http.StatusUnauthorized
	}
	return false
}

// IsCanceled reports whether err stems from client-initiated cancellation.
// Cancellation is expected during navigation and never surfaced to the user.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
