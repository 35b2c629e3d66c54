package aladin

import (
	"errors"
	"fmt"
)

// Common errors returned by the Aladin client.
var (
	// ErrAuthError indicates a missing or rejected TTB key.
	ErrAuthError = errors.New("aladin authentication error")

	// ErrRateLimited indicates the daily quota or request rate was exceeded.
	ErrRateLimited = errors.New("aladin rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with aladin")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from aladin")
)

// APIError represents an error reported by the Aladin API, either as an HTTP
// status or as an errorCode/errorMessage pair in a 200 response body.
type APIError struct {
	StatusCode int
	Code       int // Aladin errorCode, 0 when the error came from HTTP status
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("aladin API error (code %d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("aladin API error (status %d): %s", e.StatusCode, e.Message)
}

// Aladin errorCode values that map onto the sentinel errors.
const (
	codeInvalidKey   = 2
	codeQuotaReached = 10
)

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403 || apiErr.Code == codeInvalidKey
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.Code == codeQuotaReached
	}
	return false
}
