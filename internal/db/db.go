package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sleepdoctor/sleepdoc/internal/migrations"
)

// Open opens the sqlite database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*sql.DB, *Queries, error) {
	sqlDB, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	// sqlite serializes writers; a single connection avoids SQLITE_BUSY between our own goroutines.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("pinging %s: %w", path, err)
	}

	if err := migrations.Apply(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("applying migrations: %w", err)
	}

	return sqlDB, New(sqlDB), nil
}
