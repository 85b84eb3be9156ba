package client

import "errors"

// Client-side gate errors. These surface before any gateway call is
// made.
var (
	// ErrNotAuthenticated means the attempt was made without a session;
	// the caller should route to a login prompt.
	ErrNotAuthenticated = errors.New("sign in to submit")
	// ErrChallengeRequired means no challenge token is held for this
	// attempt.
	ErrChallengeRequired = errors.New("Please complete the verification challenge")
)

// GatewayError carries a rejection from the submission gateway. The
// message is shown to the user verbatim.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return e.Message
}
