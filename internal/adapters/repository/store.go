// Package repository defines the leaderboard store interface and errors.
package repository

import "context"

// Entry represents one leaderboard row. Email is used for lookups and
// admin uploads but never serialized on the public read surface.
type Entry struct {
	ID       string `json:"id"`
	Rank     int    `json:"rank"`
	UserName string `json:"user_name"`
	Points   int    `json:"points"`
	Email    string `json:"-"`
}

// Store provides read/write access to leaderboard standings. Standings
// are replaced wholesale by admin CSV uploads; there are no incremental
// writes.
type Store interface {
	// ReplaceAll swaps the current standings for entries, ordered by rank.
	ReplaceAll(ctx context.Context, entries []Entry) error

	// TopN returns the first n entries ordered by rank ascending.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Rank returns the entry for the given email.
	// Returns ErrNotFound if the email is not on the board.
	Rank(ctx context.Context, email string) (Entry, error)

	// Count returns the number of entries on the board.
	Count(ctx context.Context) int
}
