package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0xalexb/hjarta-config/config/source/rows"
	"github.com/0xalexb/hjarta-config/config/store"
)

// Option configures a Store.
type Option func(*Store)

// WithTable sets the settings table name.
func WithTable(name string) Option {
	return func(s *Store) {
		s.table = name
	}
}

// Store reads and writes configuration rows in a PostgreSQL table.
type Store struct {
	pool    *pgxpool.Pool
	table   string
	ownPool bool
}

// Open creates a connection pool for dsn and wraps it in a Store.
// Close releases the pool.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s, err := New(pool, opts...)
	if err != nil {
		pool.Close()

		return nil, err
	}

	s.ownPool = true

	return s, nil
}

// New wraps an existing pool. Close leaves the pool open.
func New(pool *pgxpool.Pool, opts ...Option) (*Store, error) {
	s := &Store{pool: pool, table: store.DefaultTable}

	for _, apply := range opts {
		apply(s)
	}

	err := store.ValidateTableName(s.table)
	if err != nil {
		return nil, fmt.Errorf("postgres store: %w", err)
	}

	return s, nil
}

func (s *Store) quotedTable() string {
	return pgx.Identifier{s.table}.Sanitize()
}

// Migrate creates the settings table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			json_value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, s.quotedTable())

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("migrate: create table %s: %w", s.table, err)
	}

	return nil
}

// Rows returns every stored row ordered by key.
func (s *Store) Rows(ctx context.Context) ([]rows.Row, error) {
	query := fmt.Sprintf(`SELECT key, json_value FROM %s ORDER BY key`, s.quotedTable())

	result, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	list, err := pgx.CollectRows(result, func(row pgx.CollectableRow) (rows.Row, error) {
		var r rows.Row

		err := row.Scan(&r.Key, &r.Value)

		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	return list, nil
}

// Upsert stores value under key, replacing any previous value.
func (s *Store) Upsert(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, json_value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET json_value = EXCLUDED.json_value, updated_at = NOW()`,
		s.quotedTable())

	_, err := s.pool.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.quotedTable())

	_, err := s.pool.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool when the Store created it.
func (s *Store) Close() error {
	if s.ownPool {
		s.pool.Close()
	}

	return nil
}
