package db

import (
	"database/sql"
	"fmt"
	"time"
)

// OpenPostgres opens the postgres run archive through the pgx stdlib
// driver. The driver must be registered by the caller's blank import.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(30 * time.Minute)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}
	return pool, nil
}

// OpenSQLite opens the local sqlite run archive.
func OpenSQLite(path string) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", path, err)
	}

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", path, err)
	}
	return pool, nil
}
