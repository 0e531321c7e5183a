// Package storage keeps fetched dataset documents in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one stored dataset document.
type Record struct {
	Subset string // "train" or "test"
	Group  string // e.g. "sci.space"
	Name   string // file name inside the group directory
	Text   string
}

// Store wraps the documents database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("storage: apply pragma %q: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subset TEXT NOT NULL,
			grp TEXT NOT NULL,
			name TEXT NOT NULL,
			body TEXT NOT NULL,
			UNIQUE (subset, grp, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_subset_grp ON documents (subset, grp)`,
		`CREATE TABLE IF NOT EXISTS imports (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			documents INTEGER NOT NULL,
			completed_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("storage: migrate: %w", err)
		}
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert stores records in a single transaction, replacing duplicates.
func (s *Store) Insert(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO documents (subset, grp, name, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("storage: prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Subset, r.Group, r.Name, r.Text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("storage: insert %s/%s/%s: %w", r.Subset, r.Group, r.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// Reset deletes every stored document and the import marker.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	for _, stmt := range []string{`DELETE FROM imports`, `DELETE FROM documents`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("storage: reset: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

// MarkImported records that a full import of n documents finished.
func (s *Store) MarkImported(ctx context.Context, n int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO imports (id, documents, completed_at) VALUES (1, ?, ?)`,
		n, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storage: mark imported: %w", err)
	}
	return nil
}

// Imported reports whether the last import ran to completion. Documents
// left behind by an interrupted import do not count.
func (s *Store) Imported(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM imports`).Scan(&n); err != nil {
		return false, fmt.Errorf("storage: imported: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: count: %w", err)
	}
	return n, nil
}

// Groups returns the distinct groups of subset in sorted order.
func (s *Store) Groups(ctx context.Context, subset string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT grp FROM documents WHERE subset = ? ORDER BY grp`, subset)
	if err != nil {
		return nil, fmt.Errorf("storage: groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("storage: scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Documents returns the records of subset belonging to any of groups,
// ordered by group then name. Subset "all" matches every subset.
func (s *Store) Documents(ctx context.Context, subset string, groups []string) ([]Record, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(groups)), ",")
	query := `SELECT subset, grp, name, body FROM documents WHERE grp IN (` + placeholders + `)`
	args := make([]any, 0, len(groups)+1)
	for _, g := range groups {
		args = append(args, g)
	}
	if subset != "all" {
		query += ` AND subset = ?`
		args = append(args, subset)
	}
	query += ` ORDER BY grp, subset DESC, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Subset, &r.Group, &r.Name, &r.Text); err != nil {
			return nil, fmt.Errorf("storage: scan document: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
