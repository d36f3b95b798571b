package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-config/config/source/rows"
	"github.com/0xalexb/hjarta-config/config/store/postgres"
	"github.com/0xalexb/hjarta-config/config/store/sqlite"
)

var errNoDatabase = errors.New("no database configured, set --db-type")

// rowStore is what the SQLite and Postgres stores have in common.
type rowStore interface {
	rows.RowReader
	Migrate(ctx context.Context) error
	Upsert(ctx context.Context, key, value string) error
	Close() error
}

func openStore(ctx context.Context, cfg databaseConfig) (rowStore, error) {
	var (
		st  rowStore
		err error
	)

	switch cfg.Type {
	case "sqlite":
		st, err = sqlite.Open(ctx, cfg.DSN, sqlite.WithTable(cfg.Table))
	case "postgres":
		st, err = postgres.Open(ctx, cfg.DSN, postgres.WithTable(cfg.Table))
	default:
		return nil, errNoDatabase
	}

	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Type, err)
	}

	if cfg.AutoMigrate {
		err = st.Migrate(ctx)
		if err != nil {
			_ = st.Close()

			return nil, fmt.Errorf("migrate %s store: %w", cfg.Type, err)
		}
	}

	return st, nil
}
