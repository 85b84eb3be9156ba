// Package sink forwards accepted submissions to the durable spreadsheet
// backend. The sink is append-only and is the store of record once a
// submission is accepted.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator"

	"github.com/ArgyPorgy/eigentribe/pkg/metrics"
)

// Record is the payload written for each accepted submission. The user
// id and email always come from the authenticated identity.
type Record struct {
	UserID      string   `json:"user_id" validate:"required"`
	UserEmail   string   `json:"user_email" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Wallet      string   `json:"wallet" validate:"required"`
	Link        string   `json:"link" validate:"required"`
	ContentTags []string `json:"content_tags,omitempty"`
}

// Writer appends records to durable storage.
type Writer interface {
	Append(ctx context.Context, rec Record) error
}

// Client posts records to the spreadsheet endpoint.
type Client struct {
	url       string
	http      *http.Client
	validator *validator.Validate
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for sink writes.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// NewClient creates a sink client for the given endpoint URL.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:       url,
		http:      http.DefaultClient,
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Append writes one record. Any non-2xx response is a hard failure; no
// retry is attempted and the caller decides what to do next.
func (c *Client) Append(ctx context.Context, rec Record) error {
	if err := c.validator.Struct(rec); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal sink record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sink request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RecordSinkLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordSinkError()
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordSinkError()
		return fmt.Errorf("%w: status %d", ErrWriteFailed, resp.StatusCode)
	}
	return nil
}
