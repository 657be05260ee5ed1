package matchstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jhw/footy-analytics-core/pkg/football"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.sqlite")
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpsertThenMatchesByLeagueOrdersByTimestampThenID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	matches := []football.Match{
		{MatchID: "b", LeagueID: football.LeaguePremier, TimestampUTC: "2024-01-02T00:00:00Z", HomeGoals: 1, AwayGoals: 0, Finished: true},
		{MatchID: "a", LeagueID: football.LeaguePremier, TimestampUTC: "2024-01-01T00:00:00Z", HomeGoals: 2, AwayGoals: 2, Finished: true},
		{MatchID: "c", LeagueID: football.LeaguePremier, TimestampUTC: "2024-01-01T00:00:00Z", HomeGoals: 0, AwayGoals: 1, Finished: true},
		{MatchID: "other-league", LeagueID: football.LeagueLaLiga, TimestampUTC: "2024-01-01T00:00:00Z", Finished: true},
	}
	require.NoError(t, store.Upsert(ctx, matches))

	out, err := store.MatchesByLeague(ctx, football.LeaguePremier)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{out[0].MatchID, out[1].MatchID, out[2].MatchID})
}

func TestUpsertByIDReplacesExistingRow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []football.Match{
		{MatchID: "m1", LeagueID: football.LeaguePremier, TimestampUTC: "2024-01-01T00:00:00Z", HomeGoals: 1, AwayGoals: 0, Finished: true},
	}))
	require.NoError(t, store.Upsert(ctx, []football.Match{
		{MatchID: "m1", LeagueID: football.LeaguePremier, TimestampUTC: "2024-01-01T00:00:00Z", HomeGoals: 3, AwayGoals: 3, Finished: true},
	}))

	out, err := store.MatchesByLeague(ctx, football.LeaguePremier)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].HomeGoals)
	assert.Equal(t, 3, out[0].AwayGoals)
}
