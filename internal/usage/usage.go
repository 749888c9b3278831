// Package usage meters authenticated explanation requests. Records
// carry only the user id, mode, and token count, never the prompt or
// context text.
package usage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists usage records in SQLite.
type Store struct {
	db *sql.DB
}

// Open creates or opens the usage database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating usage directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening usage database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging usage database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running usage migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (used in tests).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory usage database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS user_usage (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			mode       TEXT NOT NULL,
			tokens     INTEGER,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_user_usage_user ON user_usage(user_id);
	`)
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts one usage row. Callers treat failures as non-fatal.
func (s *Store) Record(ctx context.Context, userID, mode string, tokens int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_usage (id, user_id, mode, tokens, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, mode, tokens, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording usage: %w", err)
	}
	return nil
}

// UserTotals returns per-mode request counts for a user.
func (s *Store) UserTotals(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT mode, COUNT(*) FROM user_usage WHERE user_id = ? GROUP BY mode`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying usage totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var mode string
		var count int
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, fmt.Errorf("scanning usage row: %w", err)
		}
		totals[mode] = count
	}
	return totals, rows.Err()
}
