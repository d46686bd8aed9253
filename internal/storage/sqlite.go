// Package storage provides SQLite-based persistence for play session statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-match3/internal/core"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished play session.
type SessionRecord struct {
	ID        int64
	GameID    string
	Player    string // SSH user or "local"
	Stats     core.SessionStats
	Duration  time.Duration
	CreatedAt time.Time
}

// GameTotals aggregates every recorded session of one game.
type GameTotals struct {
	GameID       string
	Sessions     int
	Stats        core.SessionStats // Summed counters, LongestChain is the maximum
	PlayTime     time.Duration
	LastPlayed   time.Time
	AvgPasses    float64 // Cascade passes per matching swap
	RevertRatio  float64 // Reverted swaps per attempted swap
	ClearPerSwap float64 // Tiles cleared per matching swap
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			swaps INTEGER NOT NULL DEFAULT 0,
			matched INTEGER NOT NULL DEFAULT 0,
			reverted INTEGER NOT NULL DEFAULT 0,
			invalid_moves INTEGER NOT NULL DEFAULT 0,
			passes INTEGER NOT NULL DEFAULT 0,
			tiles_cleared INTEGER NOT NULL DEFAULT 0,
			longest_chain INTEGER NOT NULL DEFAULT 0,
			shuffles INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(game_id, id DESC);
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

// SaveSession records a finished session. Sessions without a single swap,
// invalid move or shuffle are not worth keeping and return ID 0.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	st := rec.Stats
	if st.Swaps == 0 && st.InvalidMoves == 0 && st.Shuffles == 0 {
		return 0, nil
	}
	if rec.Player == "" {
		rec.Player = "local"
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions (game_id, player, swaps, matched, reverted, invalid_moves,
			passes, tiles_cleared, longest_chain, shuffles, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Player, st.Swaps, st.Matched, st.Reverted, st.InvalidMoves,
		st.Passes, st.TilesCleared, st.LongestChain, st.Shuffles, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions returns the newest sessions first. An empty gameID lists
// sessions of every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, swaps, matched, reverted, invalid_moves, passes,
			tiles_cleared, longest_chain, shuffles, duration_ms, created_at
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var durationMS int64
		var createdAt any
		st := &r.Stats
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &st.Swaps, &st.Matched, &st.Reverted,
			&st.InvalidMoves, &st.Passes, &st.TilesCleared, &st.LongestChain, &st.Shuffles,
			&durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Totals aggregates all sessions of a game. A game with no sessions yields
// zero totals and no error.
func (s *Store) Totals(gameID string) (*GameTotals, error) {
	t := &GameTotals{GameID: gameID}
	var durationMS int64
	var lastPlayed any
	st := &t.Stats

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(swaps), 0), COALESCE(SUM(matched), 0),
			COALESCE(SUM(reverted), 0), COALESCE(SUM(invalid_moves), 0),
			COALESCE(SUM(passes), 0), COALESCE(SUM(tiles_cleared), 0),
			COALESCE(MAX(longest_chain), 0), COALESCE(SUM(shuffles), 0),
			COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&t.Sessions, &st.Swaps, &st.Matched, &st.Reverted, &st.InvalidMoves,
		&st.Passes, &st.TilesCleared, &st.LongestChain, &st.Shuffles, &durationMS, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get totals: %w", err)
	}

	t.PlayTime = time.Duration(durationMS) * time.Millisecond
	t.LastPlayed = parseTime(lastPlayed)
	t.derive()
	return t, nil
}

// AllTotals returns totals for every game that has recorded sessions.
func (s *Store) AllTotals() (map[string]*GameTotals, error) {
	rows, err := s.db.Query(`SELECT DISTINCT game_id FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list games: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	totals := make(map[string]*GameTotals, len(ids))
	for _, id := range ids {
		t, err := s.Totals(id)
		if err != nil {
			return nil, err
		}
		totals[id] = t
	}
	return totals, nil
}

// ClearSessions deletes all sessions for the given game.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

func (t *GameTotals) derive() {
	st := t.Stats
	if st.Matched > 0 {
		t.AvgPasses = float64(st.Passes) / float64(st.Matched)
		t.ClearPerSwap = float64(st.TilesCleared) / float64(st.Matched)
	}
	if st.Swaps > 0 {
		t.RevertRatio = float64(st.Reverted) / float64(st.Swaps)
	}
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
