package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ChallengeVerifier issues single-use verification tokens. Acquire
// blocks until the challenge completes or ctx is done; Consume retires
// a token so it can never be replayed.
type ChallengeVerifier interface {
	Acquire(ctx context.Context) (string, error)
	Consume(token string)
}

// NonceVerifier is an in-process verifier that mints opaque single-use
// tokens. It stands in for an interactive widget in development and in
// the load generator.
type NonceVerifier struct {
	mu     sync.Mutex
	issued map[string]struct{}
}

// NewNonceVerifier creates an empty NonceVerifier.
func NewNonceVerifier() *NonceVerifier {
	return &NonceVerifier{issued: make(map[string]struct{})}
}

// Acquire mints a fresh token.
func (v *NonceVerifier) Acquire(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token := uuid.NewString()
	v.mu.Lock()
	v.issued[token] = struct{}{}
	v.mu.Unlock()
	return token, nil
}

// Consume retires token. Unknown tokens are ignored.
func (v *NonceVerifier) Consume(token string) {
	v.mu.Lock()
	delete(v.issued, token)
	v.mu.Unlock()
}

// Outstanding returns the number of issued tokens not yet consumed.
func (v *NonceVerifier) Outstanding() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.issued)
}
