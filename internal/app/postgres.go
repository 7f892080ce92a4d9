package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/dbostatement/config"
	"github.com/guttosm/dbostatement/db/migrations"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// migrate is an indirection for unit testing; defaults to the embedded goose migrations.
var migrate = migrations.Up

// InitPostgres opens the statement store, verifies connectivity and brings
// the schema up to date.
//
// The DSN is cfg.Postgres.URL when set, otherwise it is built from the
// individual Postgres fields. The returned *sql.DB is safe for concurrent use
// and owned by the caller.
//
// Example usage:
//
//	db, err := app.InitPostgres(ctx, config.AppConfig)
//	if err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = cfg.Postgres.DSN()
	}

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
