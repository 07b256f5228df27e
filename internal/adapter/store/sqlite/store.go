// Package sqlite persists fetched pull request diffs so repeated runs
// over the same date range skip the network.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a diff cache backed by SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	schema := `
	-- Raw unified diff text keyed by the pull request diff URL
	CREATE TABLE IF NOT EXISTS diffs (
		diff_url TEXT PRIMARY KEY,
		diff TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_diffs_fetched_at ON diffs(fetched_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// GetDiff returns the cached diff for a URL. The second return value
// reports whether the cache held an entry.
func (s *Store) GetDiff(ctx context.Context, diffURL string) (string, bool, error) {
	query := `SELECT diff FROM diffs WHERE diff_url = ?`

	var diff string
	err := s.db.QueryRowContext(ctx, query, diffURL).Scan(&diff)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get diff: %w", err)
	}
	return diff, true, nil
}

// PutDiff stores or replaces the diff for a URL.
func (s *Store) PutDiff(ctx context.Context, diffURL, diff string) error {
	query := `
		INSERT INTO diffs (diff_url, diff, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(diff_url) DO UPDATE SET diff = excluded.diff, fetched_at = excluded.fetched_at
	`

	_, err := s.db.ExecContext(ctx, query, diffURL, diff, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to put diff: %w", err)
	}
	return nil
}

// PruneOlderThan deletes cache entries fetched before the cutoff and
// returns the number removed.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM diffs WHERE fetched_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune diffs: %w", err)
	}
	return result.RowsAffected()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
