// Package client drives the submission flow end to end: form
// validation, challenge verification, the authenticated gateway call,
// and reconciliation of the local history cache.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/ArgyPorgy/eigentribe/internal/domain/submission"
)

// State is the pipeline's position in one submission attempt.
type State int

// Pipeline states, in flow order.
const (
	StateIdle State = iota
	StateValidating
	StateAwaitingChallenge
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingChallenge:
		return "awaiting_challenge"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Session carries the authenticated user's credentials for one attempt.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// Form holds the user-edited submission fields.
type Form struct {
	Name          string
	WalletAddress string
	Link          string
	ContentTags   []string
}

// Pipeline orchestrates one submission attempt at a time.
type Pipeline struct {
	gatewayURL string
	verifier   ChallengeVerifier
	history    *HistoryStore
	http       *http.Client

	mu             sync.Mutex
	state          State
	form           Form
	challengeToken string
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithHTTPClient overrides the HTTP client used for gateway calls.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.http = c
		}
	}
}

// WithHistory attaches a local history store for submission echo and
// profile prefill.
func WithHistory(h *HistoryStore) Option {
	return func(p *Pipeline) {
		p.history = h
	}
}

// NewPipeline creates a pipeline targeting gatewayURL.
func NewPipeline(gatewayURL string, verifier ChallengeVerifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		verifier:   verifier,
		http:       http.DefaultClient,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SetForm replaces the form fields.
func (p *Pipeline) SetForm(f Form) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = f
}

// Form returns a copy of the current form fields.
func (p *Pipeline) Form() Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Prefill loads the cached profile for userID into the name and wallet
// fields. Link and tags always start empty.
func (p *Pipeline) Prefill(userID string) {
	if p.history == nil {
		return
	}
	profile, ok := p.history.Profile(userID)
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.Name = profile.Name
	p.form.WalletAddress = profile.WalletAddress
}

// BeginChallenge acquires a fresh single-use challenge token. It blocks
// until the verifier reports success or ctx is done.
func (p *Pipeline) BeginChallenge(ctx context.Context) error {
	token, err := p.verifier.Acquire(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.challengeToken = token
	p.mu.Unlock()
	return nil
}

// Cancel dismisses the current attempt. Any held challenge token is
// discarded; the next attempt must re-verify.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateSubmitting {
		return
	}
	if p.challengeToken != "" {
		p.verifier.Consume(p.challengeToken)
		p.challengeToken = ""
	}
	p.state = StateIdle
}

// gatewayRequest mirrors the submit body the gateway expects.
type gatewayRequest struct {
	Name        string   `json:"name"`
	Wallet      string   `json:"wallet"`
	Link        string   `json:"link"`
	ContentTags []string `json:"contentTags"`
}

// Submit runs one attempt. The caller must be authenticated; without a
// session token the pipeline does not progress and the caller should
// route to a login prompt instead. On success the link and tags are
// cleared, the name and wallet are kept for the next entry, and the
// challenge token is consumed.
func (p *Pipeline) Submit(ctx context.Context, session Session) error {
	if session.Token == "" {
		return ErrNotAuthenticated
	}

	p.mu.Lock()
	form := p.form
	p.state = StateValidating
	p.mu.Unlock()

	if err := submission.Validate(submission.Candidate{
		SubmitterName: form.Name,
		WalletAddress: form.WalletAddress,
		Link:          form.Link,
		ContentTags:   form.ContentTags,
	}); err != nil {
		p.setState(StateFailed)
		return err
	}

	p.mu.Lock()
	token := p.challengeToken
	p.mu.Unlock()
	if token == "" {
		p.setState(StateFailed)
		return ErrChallengeRequired
	}
	p.setState(StateAwaitingChallenge)

	body, err := json.Marshal(gatewayRequest{
		Name:        strings.TrimSpace(form.Name),
		Wallet:      strings.TrimSpace(form.WalletAddress),
		Link:        strings.TrimSpace(form.Link),
		ContentTags: form.ContentTags,
	})
	if err != nil {
		p.setState(StateFailed)
		return err
	}

	p.setState(StateSubmitting)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.gatewayURL+"/api/submit", bytes.NewReader(body))
	if err != nil {
		p.setState(StateFailed)
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)

	resp, err := p.http.Do(req)
	if err != nil {
		p.setState(StateFailed)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ge GatewayError
		ge.StatusCode = resp.StatusCode
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			ge.Message = apiErr.Error
		} else {
			ge.Message = fmt.Sprintf("submission failed with status %d", resp.StatusCode)
		}
		p.setState(StateFailed)
		return &ge
	}

	p.recordSuccess(session, form)
	return nil
}

// recordSuccess reconciles local state after the gateway accepted the
// submission.
func (p *Pipeline) recordSuccess(session Session, form Form) {
	if p.history != nil {
		id, err := gonanoid.New()
		if err != nil {
			id = fmt.Sprintf("sub-%d", time.Now().UnixNano())
		}
		_ = p.history.Append(session.UserID, submission.Submission{
			ID:             id,
			SubmitterName:  strings.TrimSpace(form.Name),
			WalletAddress:  strings.TrimSpace(form.WalletAddress),
			Link:           strings.TrimSpace(form.Link),
			ContentTags:    form.ContentTags,
			SubmitterEmail: session.Email,
			CreatedAt:      time.Now().UTC(),
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.verifier.Consume(p.challengeToken)
	p.challengeToken = ""
	// Keep name and wallet for the next entry.
	p.form.Link = ""
	p.form.ContentTags = nil
	p.state = StateSucceeded
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
