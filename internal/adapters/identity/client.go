// Package identity provides the HTTP client for the identity provider.
// The provider validates bearer session tokens and exposes the
// authenticated user's id and email.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ArgyPorgy/eigentribe/pkg/metrics"
)

const userPath = "/auth/v1/user"

// User is the authenticated identity attached to a verified token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verifier validates a bearer token and resolves the user behind it.
type Verifier interface {
	Verify(ctx context.Context, token string) (User, error)
}

// Client calls the identity provider's user endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for provider calls.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// NewClient creates an identity client for the given provider base URL
// and public API key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Verify forwards the bearer token to the provider. A non-success
// provider response means the token is invalid; no retry is attempted.
func (c *Client) Verify(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userPath, nil)
	if err != nil {
		return User{}, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RecordIdentityLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return User{}, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return User{}, ErrInvalidToken
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return User{}, fmt.Errorf("decode identity response: %w", err)
	}
	if u.ID == "" {
		return User{}, ErrInvalidToken
	}
	return u, nil
}
