package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/0xalexb/hjarta-config/config/source/rows"
	"github.com/0xalexb/hjarta-config/config/store"

	_ "modernc.org/sqlite" // SQLite driver
)

// quoteIdentifier safely quotes a SQLite identifier
func quoteIdentifier(name string) string {
	return `"` + name + `"`
}

// Option configures a Store.
type Option func(*Store)

// WithTable sets the settings table name.
func WithTable(name string) Option {
	return func(s *Store) {
		s.table = name
	}
}

// Store reads and writes configuration rows in a SQLite table.
type Store struct {
	db    *sql.DB
	table string
}

// Open connects to the SQLite database at dsn. Use ":memory:" for an
// in-memory database; the pool is limited to one connection so every call
// sees the same database.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	s := &Store{table: store.DefaultTable}

	for _, apply := range opts {
		apply(s)
	}

	err := store.ValidateTableName(s.table)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s.db = db

	return s, nil
}

// Migrate creates the settings table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			json_value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`, quoteIdentifier(s.table))

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("migrate: create table %s: %w", s.table, err)
	}

	return nil
}

// Rows returns every stored row ordered by key.
func (s *Store) Rows(ctx context.Context) ([]rows.Row, error) {
	query := fmt.Sprintf(`SELECT key, json_value FROM %s ORDER BY key`, quoteIdentifier(s.table))

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	defer func() { _ = result.Close() }()

	var list []rows.Row

	for result.Next() {
		var row rows.Row

		err = result.Scan(&row.Key, &row.Value)
		if err != nil {
			return nil, fmt.Errorf("list rows: scan: %w", err)
		}

		list = append(list, row)
	}

	err = result.Err()
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	return list, nil
}

// Upsert stores value under key, replacing any previous value.
func (s *Store) Upsert(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, json_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET json_value = excluded.json_value, updated_at = excluded.updated_at`,
		quoteIdentifier(s.table))

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, quoteIdentifier(s.table))

	_, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
