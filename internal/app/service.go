// Package app provides the core service implementing the submission
// gateway and the leaderboard operations behind the HTTP API.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ArgyPorgy/eigentribe/internal/adapters/identity"
	"github.com/ArgyPorgy/eigentribe/internal/adapters/repository"
	"github.com/ArgyPorgy/eigentribe/internal/adapters/sink"
	"github.com/ArgyPorgy/eigentribe/internal/domain/ratelimit"
	"github.com/ArgyPorgy/eigentribe/internal/domain/submission"
	"github.com/ArgyPorgy/eigentribe/pkg/logger"
	"github.com/ArgyPorgy/eigentribe/pkg/metrics"
)

// Field bounds applied to the submit payload before validation.
const (
	maxNameLen   = 500
	maxWalletLen = 500
	maxLinkLen   = 1000
)

// Service wires the submission pipeline: identity checks, rate limiting,
// payload validation, the durable sink write, and leaderboard state.
type Service struct {
	identity identity.Verifier
	sink     sink.Writer
	limiter  *ratelimit.Limiter
	board    repository.Store

	adminEmail string
	log        logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithIdentity sets the identity verifier.
func WithIdentity(v identity.Verifier) Option {
	return func(s *Service) {
		if v != nil {
			s.identity = v
		}
	}
}

// WithSink sets the durable submission sink.
func WithSink(w sink.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.sink = w
		}
	}
}

// WithRateLimiter sets the per-user rate limiter.
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(s *Service) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithLeaderboard sets the leaderboard store.
func WithLeaderboard(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.board = store
		}
	}
}

// WithAdminEmail sets the admin account for leaderboard uploads. The
// admin surface stays disabled when empty.
func WithAdminEmail(email string) Option {
	return func(s *Service) {
		s.adminEmail = email
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Service with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		limiter: ratelimit.New(),
		board:   repository.NewMemStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("app")
	}
	return s
}

// submitPayload mirrors the submit request body.
type submitPayload struct {
	Name        string   `json:"name"`
	Wallet      string   `json:"wallet"`
	Link        string   `json:"link"`
	ContentTags []string `json:"contentTags"`
}

// Submit runs the gateway gate sequence for one submission attempt.
// Gates run in strict order and every failure is terminal: bearer auth,
// rate limit, payload bounds, shape checks, sink write. The rate limit
// record is advanced only after the sink write succeeds.
func (s *Service) Submit(ctx context.Context, token string, payload []byte) error {
	if token == "" {
		metrics.RecordSubmissionRejected("auth")
		return ErrNoAuthToken
	}

	user, err := s.identity.Verify(ctx, token)
	if err != nil {
		metrics.RecordSubmissionRejected("auth")
		if errors.Is(err, identity.ErrInvalidToken) {
			return ErrInvalidToken
		}
		return err
	}

	if ok, wait := s.limiter.Allow(user.ID); !ok {
		metrics.RecordRateLimitHit()
		metrics.RecordSubmissionRejected("rate_limit")
		s.log.Info(ctx, "rate limit hit", logger.String("email", user.Email), logger.Int("wait_seconds", wait))
		return &RateLimitError{WaitSeconds: wait}
	}

	var req submitPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		metrics.RecordSubmissionRejected("validation")
		return err
	}

	name := truncate(strings.TrimSpace(req.Name), maxNameLen)
	wallet := truncate(strings.TrimSpace(req.Wallet), maxWalletLen)
	link := truncate(strings.TrimSpace(req.Link), maxLinkLen)

	if name == "" || wallet == "" || link == "" {
		metrics.RecordSubmissionRejected("validation")
		return ErrAllFieldsRequired
	}
	if len(wallet) < submission.MinWalletLength {
		metrics.RecordSubmissionRejected("validation")
		return ErrInvalidWallet
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		metrics.RecordSubmissionRejected("validation")
		return ErrLinkScheme
	}

	err = s.sink.Append(ctx, sink.Record{
		UserID:      user.ID,
		UserEmail:   user.Email,
		Name:        name,
		Wallet:      wallet,
		Link:        link,
		ContentTags: req.ContentTags,
	})
	if err != nil {
		metrics.RecordSubmissionRejected("sink")
		s.log.Error(ctx, "sink write failed", logger.String("email", user.Email), logger.Error(err))
		if errors.Is(err, sink.ErrWriteFailed) {
			return ErrSaveFailed
		}
		return err
	}

	// Commit-on-success: reserve the window only now.
	s.limiter.Commit(user.ID)
	metrics.RecordSubmissionAccepted()
	s.log.Info(ctx, "submission accepted", logger.String("email", user.Email))
	return nil
}

// IsAdmin reports whether email is the configured admin account.
func (s *Service) IsAdmin(email string) bool {
	return s.adminEmail != "" && strings.EqualFold(email, s.adminEmail)
}

// UploadLeaderboard authenticates the caller, checks the admin account,
// decodes the CSV and replaces the standings wholesale. Malformed rows
// fail the whole upload; nothing is partially applied.
func (s *Service) UploadLeaderboard(ctx context.Context, token, csvData string) (int, error) {
	if token == "" {
		return 0, ErrNoAuthToken
	}
	user, err := s.identity.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}
	if !s.IsAdmin(user.Email) {
		return 0, ErrNotAdmin
	}

	entries, err := repository.ParseCSV(csvData)
	if err != nil {
		return 0, err
	}
	if err := s.board.ReplaceAll(ctx, entries); err != nil {
		return 0, err
	}
	metrics.RecordLeaderboardUpload()
	s.log.Info(ctx, "leaderboard replaced", logger.String("admin", user.Email), logger.Int("rows", len(entries)))
	return len(entries), nil
}

// TopN returns the first n leaderboard entries by rank.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	return s.board.TopN(ctx, n)
}

// GetStats returns a point-in-time view of service counters.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"leaderboardSize":  s.board.Count(context.Background()),
		"rateLimitEntries": s.limiter.Size(),
	}
}

// truncate bounds s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
