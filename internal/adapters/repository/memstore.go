package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ArgyPorgy/eigentribe/pkg/metrics"
)

// MemStore is an in-memory Store. Reads serve an immutable snapshot
// slice so TopN never observes a partially applied upload.
type MemStore struct {
	mu      sync.RWMutex
	entries []Entry
	byEmail map[string]int
}

// NewMemStore creates an empty in-memory leaderboard store.
func NewMemStore() *MemStore {
	return &MemStore{byEmail: make(map[string]int)}
}

// ReplaceAll swaps the standings. Entries are re-sorted by rank and
// missing ids are assigned from the rank position.
func (s *MemStore) ReplaceAll(ctx context.Context, entries []Entry) error {
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)
	sort.SliceStable(snapshot, func(i, j int) bool { return snapshot[i].Rank < snapshot[j].Rank })

	byEmail := make(map[string]int, len(snapshot))
	for i := range snapshot {
		if snapshot[i].ID == "" {
			snapshot[i].ID = strconv.Itoa(snapshot[i].Rank)
		}
		byEmail[strings.ToLower(snapshot[i].Email)] = i
	}

	s.mu.Lock()
	s.entries = snapshot
	s.byEmail = byEmail
	s.mu.Unlock()

	metrics.UpdateLeaderboardSize(len(snapshot))
	return nil
}

// TopN returns the first n entries by rank. A negative n is invalid; an
// n beyond the board size returns the whole board.
func (s *MemStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 0 {
		return nil, ErrInvalidLimit
	}
	s.mu.RLock()
	snapshot := s.entries
	s.mu.RUnlock()

	if n > len(snapshot) {
		n = len(snapshot)
	}
	out := make([]Entry, n)
	copy(out, snapshot[:n])
	return out, nil
}

// Rank returns the entry for email, case-insensitively.
func (s *MemStore) Rank(ctx context.Context, email string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return s.entries[i], nil
}

// Count returns the number of entries on the board.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
