package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/ArgyPorgy/eigentribe/internal/domain/submission"
)

// DefaultMaxHistory caps cached submissions per user. Older entries are
// evicted first.
const DefaultMaxHistory = 100

// Profile is the prefill snapshot remembered from a user's last
// accepted submission.
type Profile struct {
	Name          string `json:"name"`
	WalletAddress string `json:"wallet"`
}

type historyFile struct {
	Submissions map[string][]submission.Submission `json:"submissions"`
	Profiles    map[string]Profile                 `json:"profiles"`
}

// HistoryStore is a file-backed cache of accepted submissions and
// prefill profiles, keyed by user id. It is a convenience echo only;
// the sink remains the source of truth.
type HistoryStore struct {
	path       string
	maxEntries int

	mu   sync.Mutex
	data historyFile
}

// HistoryOption applies a configuration option to the HistoryStore.
type HistoryOption func(*HistoryStore)

// WithMaxHistory overrides the per-user entry cap.
func WithMaxHistory(n int) HistoryOption {
	return func(h *HistoryStore) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// NewHistoryStore opens or creates the cache file at path.
func NewHistoryStore(path string, opts ...HistoryOption) (*HistoryStore, error) {
	h := &HistoryStore{
		path:       path,
		maxEntries: DefaultMaxHistory,
		data: historyFile{
			Submissions: make(map[string][]submission.Submission),
			Profiles:    make(map[string]Profile),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HistoryStore) load() error {
	raw, err := os.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var data historyFile
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt cache is dropped rather than blocking the app.
		return nil
	}
	if data.Submissions == nil {
		data.Submissions = make(map[string][]submission.Submission)
	}
	if data.Profiles == nil {
		data.Profiles = make(map[string]Profile)
	}
	h.data = data
	return nil
}

func (h *HistoryStore) save() error {
	raw, err := json.MarshalIndent(h.data, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(h.path, raw, 0o644)
}

// Append records an accepted submission for userID, updates the prefill
// profile, and persists. The newest entry goes first.
func (h *HistoryStore) Append(userID string, sub submission.Submission) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := append([]submission.Submission{sub}, h.data.Submissions[userID]...)
	if len(entries) > h.maxEntries {
		entries = entries[:h.maxEntries]
	}
	h.data.Submissions[userID] = entries
	h.data.Profiles[userID] = Profile{
		Name:          sub.SubmitterName,
		WalletAddress: sub.WalletAddress,
	}
	return h.save()
}

// History returns the cached submissions for userID, newest first.
func (h *HistoryStore) History(userID string) []submission.Submission {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := h.data.Submissions[userID]
	out := make([]submission.Submission, len(entries))
	copy(out, entries)
	return out
}

// Profile returns the prefill snapshot for userID, if one exists.
func (h *HistoryStore) Profile(userID string) (Profile, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.data.Profiles[userID]
	return p, ok
}
