package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists variables to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite variable store.
// The path should be a file path (e.g., "./vars.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to ":memory:" opens its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS variables (
			namespace TEXT NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			version INTEGER NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (namespace, name)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, namespace, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM variables
		WHERE namespace = ? AND name = ?
	`, namespace, name).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get variable: %w", err)
	}
	return value, nil
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, namespace, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO variables (namespace, name, value, version, updated_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(namespace, name) DO UPDATE SET
			value = excluded.value,
			version = variables.version + 1,
			updated_at = excluded.updated_at
	`, namespace, name, value, time.Now().UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("set variable: %w", err)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, namespace string) ([]Variable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, value, version, updated_at
		FROM variables
		WHERE namespace = ?
		ORDER BY name
	`, namespace)
	if err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	defer rows.Close()

	vars := []Variable{}
	for rows.Next() {
		v := Variable{Namespace: namespace}
		var updated string
		if err := rows.Scan(&v.Name, &v.Value, &v.Version, &updated); err != nil {
			return nil, fmt.Errorf("scan variable: %w", err)
		}
		v.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		vars = append(vars, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variables: %w", err)
	}

	return vars, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, namespace, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM variables
		WHERE namespace = ? AND name = ?
	`, namespace, name)
	if err != nil {
		return fmt.Errorf("delete variable: %w", err)
	}
	return nil
}

// DeleteNamespace implements Store.
func (s *SQLiteStore) DeleteNamespace(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM variables WHERE namespace = ?
	`, namespace)
	if err != nil {
		return fmt.Errorf("delete namespace: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
