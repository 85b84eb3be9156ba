package client

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArgyPorgy/eigentribe/internal/domain/submission"
)

func TestHistoryPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "history.json")

	h, err := NewHistoryStore(path)
	require.NoError(t, err)
	require.NoError(t, h.Append("u1", submission.Submission{ID: "s1", SubmitterName: "Alice", WalletAddress: "0xabc"}))

	reopened, err := NewHistoryStore(path)
	require.NoError(t, err)
	entries := reopened.History("u1")
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].ID)

	profile, ok := reopened.Profile("u1")
	require.True(t, ok)
	assert.Equal(t, "Alice", profile.Name)
}

func TestHistoryBoundedPerUser(t *testing.T) {
	h, err := NewHistoryStore(filepath.Join(t.TempDir(), "history.json"), WithMaxHistory(3))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Append("u1", submission.Submission{ID: fmt.Sprintf("s%d", i)}))
	}

	entries := h.History("u1")
	require.Len(t, entries, 3)
	// Newest first; the oldest two were evicted.
	assert.Equal(t, "s4", entries[0].ID)
	assert.Equal(t, "s2", entries[2].ID)
}

func TestHistoryIsolatesUsers(t *testing.T) {
	h, err := NewHistoryStore(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	require.NoError(t, h.Append("u1", submission.Submission{ID: "a"}))
	require.NoError(t, h.Append("u2", submission.Submission{ID: "b"}))

	assert.Len(t, h.History("u1"), 1)
	assert.Len(t, h.History("u2"), 1)
	_, ok := h.Profile("u3")
	assert.False(t, ok)
}

func TestHistoryToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	h, err := NewHistoryStore(path)
	require.NoError(t, err)
	assert.Empty(t, h.History("u1"))

	// The store stays usable and overwrites the corrupt file.
	require.NoError(t, h.Append("u1", submission.Submission{ID: "s1"}))
	assert.Len(t, h.History("u1"), 1)
}
