// Package storage provides SQLite-based persistence for finished deals.
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

// ErrNotFound is returned when a result lookup matches no row.
var ErrNotFound = errors.New("storage: result not found")

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished (won or abandoned) deal.
type Result struct {
	ID          string
	Seed        int64
	Score       int
	Won         bool
	ElapsedSecs int
	Moves       int
	CreatedAt   time.Time
}

// Stats contains aggregated statistics over all stored results.
type Stats struct {
	Games      int
	Wins       int
	BestScore  int
	AvgScore   float64
	FastestWin int // Seconds; 0 when nothing has been won
	LastPlayed time.Time
}

// WinRate returns wins as a fraction of games, or 0 with no games.
func (s Stats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
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
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(score DESC);
		CREATE INDEX IF NOT EXISTS idx_results_seed ON results(seed, score DESC);
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

// SaveResult records a finished deal and returns its generated ID.
// A non-empty r.ID is kept as is.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO results (id, seed, score, won, elapsed_secs, moves)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.Score, r.Won, r.ElapsedSecs, r.Moves,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}

	return r.ID, nil
}

// TopResults retrieves the best N results, ordered by score then by time.
func (s *Store) TopResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, score, won, elapsed_secs, moves, created_at
		 FROM results
		 ORDER BY score DESC, elapsed_secs ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// ResultsForSeed retrieves the best N results played on one deal.
func (s *Store) ResultsForSeed(seed int64, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, score, won, elapsed_secs, moves, created_at
		 FROM results
		 WHERE seed = ?
		 ORDER BY score DESC, elapsed_secs ASC
		 LIMIT ?`,
		seed, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results for seed %d: %w", seed, err)
	}
	return scanResults(rows)
}

// ResultByID retrieves one result. Returns ErrNotFound if no row matches.
func (s *Store) ResultByID(id string) (*Result, error) {
	var r Result
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, score, won, elapsed_secs, moves, created_at
		 FROM results
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Seed, &r.Score, &r.Won, &r.ElapsedSecs, &r.Moves, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// Stats retrieves aggregated statistics over every stored result.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MIN(CASE WHEN won = 1 THEN elapsed_secs END), 0)
		 FROM results`,
	).Scan(&stats.Games, &stats.Wins, &stats.BestScore, &stats.AvgScore, &stats.FastestWin)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results ORDER BY created_at DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Clear deletes every stored result.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Score, &r.Won, &r.ElapsedSecs, &r.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
