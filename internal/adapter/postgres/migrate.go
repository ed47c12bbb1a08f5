package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/netroncoso/presupuestador/migrations"
)

// NewMigrator returns a goose provider over the embedded migrations.
// The returned *sql.DB shares the pool's connections and must be closed by the caller.
func NewMigrator(pool *pgxpool.Pool) (*goose.Provider, *sql.DB, error) {
	return newMigrator(stdlib.OpenDBFromPool(pool), migrations.FS)
}

func newMigrator(db *sql.DB, fsys fs.FS) (*goose.Provider, *sql.DB, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, db, nil
}

// Migrate applies all pending migrations and returns how many ran.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	provider, db, err := NewMigrator(pool)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
