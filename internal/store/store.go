package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/deepaksivamani/virtualgames/internal/game"
)

// Store persists finished-match results in SQLite and serves the
// leaderboard. It is the game package's ResultSink.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps writers from blocking leaderboard reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			name TEXT PRIMARY KEY,
			total_score INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			mode TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_name ON results(name)`,
		`CREATE INDEX IF NOT EXISTS idx_users_total_score ON users(total_score DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// RecordResult writes one row per standing and folds each into the
// per-user aggregates. All or nothing.
func (s *Store) RecordResult(ctx context.Context, standings []game.Standing, mode string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	resultStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO results (name, score, won, mode) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer resultStmt.Close()

	userStmt, err := tx.PrepareContext(ctx, `INSERT INTO users (name, total_score, wins, losses, games_played)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			total_score = total_score + excluded.total_score,
			wins = wins + excluded.wins,
			losses = losses + excluded.losses,
			games_played = games_played + 1`)
	if err != nil {
		return err
	}
	defer userStmt.Close()

	for _, st := range standings {
		won := 0
		lost := 1
		if st.IsWinner {
			won, lost = 1, 0
		}
		if _, err := resultStmt.ExecContext(ctx, st.Name, st.Score, won, mode); err != nil {
			return err
		}
		if _, err := userStmt.ExecContext(ctx, st.Name, st.Score, won, lost); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LeaderboardEntry is one row of the all-time leaderboard.
type LeaderboardEntry struct {
	Name        string `json:"name"`
	TotalScore  int    `json:"totalScore"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// TopPlayers returns up to limit players ordered by lifetime score.
func (s *Store) TopPlayers(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, total_score, wins, losses, games_played
		FROM users ORDER BY total_score DESC, wins DESC, name ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.TotalScore, &e.Wins, &e.Losses, &e.GamesPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
