package notion

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the Notion client.
var (
	// ErrAuthError indicates a missing or invalid integration token, or a
	// database the integration has not been shared with.
	ErrAuthError = errors.New("notion authentication error")

	// ErrValidation indicates Notion rejected the request body.
	ErrValidation = errors.New("notion validation error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("notion rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with notion")
)

// APIError represents a non-200 response from the Notion API.
type APIError struct {
	StatusCode int
	Code       string // Error code from API (e.g., "validation_error", "unauthorized")
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the status onto the matching sentinel error so callers can
// use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthError
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthError)
}

// IsValidationError returns true if Notion rejected the page payload.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNetworkError returns true if the request never got a response.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetworkError)
}

// Kind classifies an error for logging.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNetworkError(err):
		return "network"
	case IsAuthError(err):
		return "auth"
	case IsValidationError(err):
		return "validation"
	case IsRateLimited(err):
		return "rate_limited"
	}
	return "api"
}
