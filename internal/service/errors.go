// Package service provides application-level services for managing
// cultural cards and their public sharing.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to
// HTTP status codes.
var (
	// ErrCardCreationFailed indicates the card could not be created even
	// though the input was valid.
	ErrCardCreationFailed = errors.New("card creation failed")

	// ErrCardUpdateFailed indicates the card update did not take effect.
	ErrCardUpdateFailed = errors.New("card update failed")
)
