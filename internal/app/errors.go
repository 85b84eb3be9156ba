package app

import (
	"errors"
	"fmt"
)

// User-facing error kinds for the submission gateway. The API layer maps
// these to HTTP statuses; the message strings are surfaced verbatim to
// clients, so they are part of the contract.
var (
	ErrNoAuthToken       = errors.New("No authorization token")
	ErrInvalidToken      = errors.New("Invalid token")
	ErrAllFieldsRequired = errors.New("All fields are required")
	ErrInvalidWallet     = errors.New("Invalid wallet address")
	ErrLinkScheme        = errors.New("Link must start with http:// or https://")
	ErrSaveFailed        = errors.New("Failed to save submission")
	ErrNotAdmin          = errors.New("Access denied. Only admin users can upload CSV files.")
)

// RateLimitError carries the remaining wait before the next submission
// is accepted.
type RateLimitError struct {
	WaitSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Please wait %d seconds before submitting again", e.WaitSeconds)
}
