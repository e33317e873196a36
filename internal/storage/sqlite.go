// Package storage provides SQLite-based persistence for finished match results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// NoWinner is stored for drawn or abandoned matches.
const NoWinner = -1

// End reasons recorded with a match.
const (
	EndCompleted = "completed"
	EndAbandoned = "abandoned"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchResult is one finished match.
type MatchResult struct {
	ID            int64
	MatchID       string
	GameID        string
	Players       int
	Rounds        int
	Winner        int // slot with the most points, NoWinner on a tie
	EndReason     string
	DurationTicks uint64
	Scores        []int // indexed by slot
	CreatedAt     time.Time
}

// SlotWins is a leaderboard row.
type SlotWins struct {
	Slot int
	Wins int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			players INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			winner INTEGER,
			end_reason TEXT NOT NULL,
			duration_ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches(game_id, winner);

		CREATE TABLE IF NOT EXISTS match_scores (
			match_id TEXT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
			slot INTEGER NOT NULL,
			score INTEGER NOT NULL,
			PRIMARY KEY (match_id, slot)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match and its per-slot scores in one
// transaction. A missing MatchID is generated. Returns the match ID.
func (s *Store) SaveMatch(r MatchResult) (string, error) {
	if r.MatchID == "" {
		r.MatchID = uuid.NewString()
	}
	if r.EndReason == "" {
		r.EndReason = EndCompleted
	}
	var winner sql.NullInt64
	if r.Winner >= 0 {
		winner = sql.NullInt64{Int64: int64(r.Winner), Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO matches
		 (match_id, game_id, players, rounds, winner, end_reason, duration_ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.GameID, r.Players, r.Rounds, winner, r.EndReason, int64(r.DurationTicks),
	); err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}

	for slot, score := range r.Scores {
		if _, err := tx.Exec(
			"INSERT INTO match_scores (match_id, slot, score) VALUES (?, ?, ?)",
			r.MatchID, slot, score,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save score for slot %d: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return r.MatchID, nil
}

const matchColumns = `id, match_id, game_id, players, rounds, winner, end_reason, duration_ticks, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchResult, error) {
	var (
		r         MatchResult
		winner    sql.NullInt64
		duration  int64
		createdAt any
	)
	if err := row.Scan(&r.ID, &r.MatchID, &r.GameID, &r.Players, &r.Rounds, &winner, &r.EndReason, &duration, &createdAt); err != nil {
		return r, err
	}
	r.Winner = NoWinner
	if winner.Valid {
		r.Winner = int(winner.Int64)
	}
	r.DurationTicks = uint64(duration)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// MatchByID retrieves a match by its match ID. It returns nil when there is
// no such match.
func (s *Store) MatchByID(matchID string) (*MatchResult, error) {
	r, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	if r.Scores, err = s.scores(r.MatchID); err != nil {
		return nil, err
	}
	return &r, nil
}

// RecentMatches retrieves the most recent matches, newest first. An empty
// gameID returns matches of every game.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		r, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range results {
		if results[i].Scores, err = s.scores(results[i].MatchID); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *Store) scores(matchID string) ([]int, error) {
	rows, err := s.db.Query(
		"SELECT slot, score FROM match_scores WHERE match_id = ? ORDER BY slot",
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var slot, score int
		if err := rows.Scan(&slot, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		for len(scores) <= slot {
			scores = append(scores, 0)
		}
		scores[slot] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return scores, nil
}

// Wins returns the number of matches won per slot for a game, best first.
func (s *Store) Wins(gameID string) ([]SlotWins, error) {
	rows, err := s.db.Query(
		`SELECT winner, COUNT(*) AS wins
		 FROM matches
		 WHERE game_id = ? AND winner IS NOT NULL
		 GROUP BY winner
		 ORDER BY wins DESC, winner ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wins: %w", err)
	}
	defer rows.Close()

	var out []SlotWins
	for rows.Next() {
		var w SlotWins
		if err := rows.Scan(&w.Slot, &w.Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan wins: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Matches    int
	Draws      int
	AvgRounds  float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner IS NULL THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(rounds), 0),
		        MAX(created_at)
		 FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Matches, &stats.Draws, &stats.AvgRounds, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
