package sink

import "errors"

// Sentinel kinds for sink errors.
var (
	ErrInvalidRecord = errors.New("invalid sink record")
	ErrWriteFailed   = errors.New("sink write failed")
)
