package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepaksivamani/virtualgames/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordResultAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.RecordResult(ctx, []game.Standing{
		{Name: "Alice", Score: 500, IsWinner: true},
		{Name: "Bob", Score: 300},
	}, "draw")
	require.NoError(t, err)

	err = s.RecordResult(ctx, []game.Standing{
		{Name: "Bob", Score: 200, IsWinner: true},
		{Name: "Alice", Score: 100},
	}, "riddle")
	require.NoError(t, err)

	entries, err := s.TopPlayers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, LeaderboardEntry{
		Name: "Alice", TotalScore: 600, Wins: 1, Losses: 1, GamesPlayed: 2,
	}, entries[0])
	assert.Equal(t, LeaderboardEntry{
		Name: "Bob", TotalScore: 500, Wins: 1, Losses: 1, GamesPlayed: 2,
	}, entries[1])
}

func TestStore_TopPlayersOrderingAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordResult(ctx, []game.Standing{
		{Name: "Carol", Score: 900, IsWinner: true},
		{Name: "Alice", Score: 400},
		{Name: "Bob", Score: 700},
	}, "riddle"))

	entries, err := s.TopPlayers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Carol", entries[0].Name)
	assert.Equal(t, "Bob", entries[1].Name)

	// Non-positive limits fall back to the default.
	entries, err = s.TopPlayers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestStore_TopPlayersEmpty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.TopPlayers(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
