package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists variables to PostgreSQL through a pgx pool.
// It is suitable for multi-process deployments sharing one variable set.
type PostgresStore struct {
	pool   *pgxpool.Pool
	closed atomic.Bool
}

// NewPostgresStore connects to dsn, verifies the connection and creates
// the variables table if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s, err := NewPostgresStoreFromPool(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreFromPool wraps an existing pool. Close closes the pool.
func NewPostgresStoreFromPool(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS variables (
			namespace TEXT NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			version INTEGER NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (namespace, name)
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, namespace, name string) (string, error) {
	if s.closed.Load() {
		return "", ErrStoreClosed
	}

	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM variables
		WHERE namespace = $1 AND name = $2
	`, namespace, name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get variable: %w", err)
	}
	return value, nil
}

// Set implements Store.
func (s *PostgresStore) Set(ctx context.Context, namespace, name, value string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO variables (namespace, name, value, version, updated_at)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (namespace, name) DO UPDATE SET
			value = EXCLUDED.value,
			version = variables.version + 1,
			updated_at = EXCLUDED.updated_at
	`, namespace, name, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set variable: %w", err)
	}
	return nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, namespace string) ([]Variable, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	rows, err := s.pool.Query(ctx, `
		SELECT name, value, version, updated_at
		FROM variables
		WHERE namespace = $1
		ORDER BY name
	`, namespace)
	if err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	defer rows.Close()

	vars := []Variable{}
	for rows.Next() {
		v := Variable{Namespace: namespace}
		if err := rows.Scan(&v.Name, &v.Value, &v.Version, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variable: %w", err)
		}
		vars = append(vars, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variables: %w", err)
	}
	return vars, nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, namespace, name string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	_, err := s.pool.Exec(ctx, `
		DELETE FROM variables
		WHERE namespace = $1 AND name = $2
	`, namespace, name)
	if err != nil {
		return fmt.Errorf("delete variable: %w", err)
	}
	return nil
}

// DeleteNamespace implements Store.
func (s *PostgresStore) DeleteNamespace(ctx context.Context, namespace string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	_, err := s.pool.Exec(ctx, `DELETE FROM variables WHERE namespace = $1`, namespace)
	if err != nil {
		return fmt.Errorf("delete namespace: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.pool.Close()
	return nil
}
