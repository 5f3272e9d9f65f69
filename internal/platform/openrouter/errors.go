package openrouter

import (
	"fmt"

	"github.com/culturahq/cultura-api/internal/generation"
)

// RequestError carries the HTTP status and body text of a failed request.
// It wraps generation.ErrRequestFailed for errors.Is classification.
type RequestError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface for RequestError.
func (e *RequestError) Error() string {
	return fmt.Sprintf("model API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Unwrap returns generation.ErrRequestFailed to support errors.Is.
func (e *RequestError) Unwrap() error {
	return generation.ErrRequestFailed
}
