package generation

import (
	"errors"
	"fmt"
)

// Sentinel errors for model client failures. Implementations of
// ModelClient wrap these so the enhancer can classify failures without
// knowing the concrete transport.
var (
	// ErrAPIKeyMissing is returned when the model client has no credential.
	ErrAPIKeyMissing = errors.New("model API key is not configured")

	// ErrEmptyInput is returned when the prompt is empty or whitespace only.
	ErrEmptyInput = errors.New("input message cannot be empty")

	// ErrRequestFailed is returned when the model endpoint rejects the
	// request or cannot be reached.
	ErrRequestFailed = errors.New("model API request failed")

	// ErrInvalidResponse is returned when the model response cannot be
	// decoded or lacks the expected structure.
	ErrInvalidResponse = errors.New("invalid response from model API")
)

// Code is a machine-readable classification of a generation failure,
// surfaced in API error responses.
type Code string

// Generation failure codes.
const (
	CodeAPIKeyMissing    Code = "API_KEY_MISSING"
	CodeAPIRequestFailed Code = "API_REQUEST_FAILED"
	CodeGenerationFailed Code = "GENERATION_FAILED"
)

// GenerationError is the typed error surfaced to callers when card
// enhancement fails structurally. Parse and shape failures inside the
// extractor never produce one; those degrade to returning the original
// card data.
type GenerationError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface for GenerationError.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// newGenerationError classifies err into a GenerationError with the
// matching code.
func newGenerationError(err error) *GenerationError {
	switch {
	case errors.Is(err, ErrAPIKeyMissing):
		return &GenerationError{
			Code:    CodeAPIKeyMissing,
			Message: "model API key not configured",
			Err:     err,
		}
	case errors.Is(err, ErrRequestFailed):
		return &GenerationError{
			Code:    CodeAPIRequestFailed,
			Message: "model API request failed",
			Err:     err,
		}
	default:
		return &GenerationError{
			Code:    CodeGenerationFailed,
			Message: "failed to generate card data",
			Err:     err,
		}
	}
}
