// Package matchstore is the single-writer, upsert-by-id persistence layer
// for the finished match corpus (backed by modernc.org/sqlite, used here
// strictly as a key-value row store per the core's scope) and the
// atomically-replaced JSON league parameters cache.
package matchstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhw/footy-analytics-core/pkg/football"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	match_id        TEXT PRIMARY KEY,
	league_id       INTEGER NOT NULL,
	season_label    TEXT NOT NULL,
	timestamp_utc   TEXT NOT NULL,
	home_team_id    TEXT NOT NULL,
	away_team_id    TEXT NOT NULL,
	home_goals      INTEGER NOT NULL,
	away_goals      INTEGER NOT NULL,
	finished        INTEGER NOT NULL,
	cancelled       INTEGER NOT NULL,
	awarded         INTEGER NOT NULL,
	reason_long_key TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_matches_league_ts ON matches(league_id, timestamp_utc, match_id);
`

// Store is a single-writer SQLite-backed match corpus.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening match store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // single-writer idiom
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying match store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces a batch of matches by match_id.
func (s *Store) Upsert(ctx context.Context, matches []football.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning match upsert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (match_id, league_id, season_label, timestamp_utc, home_team_id,
			away_team_id, home_goals, away_goals, finished, cancelled, awarded, reason_long_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id) DO UPDATE SET
			league_id=excluded.league_id, season_label=excluded.season_label,
			timestamp_utc=excluded.timestamp_utc, home_team_id=excluded.home_team_id,
			away_team_id=excluded.away_team_id, home_goals=excluded.home_goals,
			away_goals=excluded.away_goals, finished=excluded.finished,
			cancelled=excluded.cancelled, awarded=excluded.awarded,
			reason_long_key=excluded.reason_long_key
	`)
	if err != nil {
		return fmt.Errorf("preparing match upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		if _, err := stmt.ExecContext(ctx, m.MatchID, m.LeagueID, m.SeasonLabel, m.TimestampUTC,
			m.HomeTeamID, m.AwayTeamID, m.HomeGoals, m.AwayGoals,
			boolToInt(m.Finished), boolToInt(m.Cancelled), boolToInt(m.Awarded), m.ReasonLongKey); err != nil {
			return fmt.Errorf("upserting match %s: %w", m.MatchID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing match upsert: %w", err)
	}
	return nil
}

// MatchesByLeague returns all matches for a league ordered by
// (timestamp, match_id), the ordering the backtester requires.
func (s *Store) MatchesByLeague(ctx context.Context, leagueID uint32) ([]football.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, league_id, season_label, timestamp_utc, home_team_id, away_team_id,
			home_goals, away_goals, finished, cancelled, awarded, reason_long_key
		FROM matches WHERE league_id = ?
		ORDER BY timestamp_utc ASC, match_id ASC
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("querying matches for league %d: %w", leagueID, err)
	}
	defer rows.Close()

	var out []football.Match
	for rows.Next() {
		var m football.Match
		var finished, cancelled, awarded int
		if err := rows.Scan(&m.MatchID, &m.LeagueID, &m.SeasonLabel, &m.TimestampUTC,
			&m.HomeTeamID, &m.AwayTeamID, &m.HomeGoals, &m.AwayGoals,
			&finished, &cancelled, &awarded, &m.ReasonLongKey); err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}
		m.Finished = finished != 0
		m.Cancelled = cancelled != 0
		m.Awarded = awarded != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
