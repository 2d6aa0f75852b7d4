package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the run archive tables. Column types stay within
// the intersection of sqlite and postgres so one schema serves both.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRuns := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		seed BIGINT NOT NULL,
		ticks INTEGER NOT NULL,
		delivered INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		late INTEGER NOT NULL,
		total_distance REAL NOT NULL,
		timed_out INTEGER NOT NULL
	);
	`

	createRunEvents := `
	CREATE TABLE IF NOT EXISTS run_events (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		tick INTEGER NOT NULL,
		kind TEXT NOT NULL,
		vehicle_id TEXT,
		package_id TEXT,
		PRIMARY KEY (run_id, seq)
	);
	`

	createIndex := `
	CREATE INDEX IF NOT EXISTS idx_run_events_run_tick
	ON run_events(run_id, tick);
	`

	statements := []string{createRuns, createRunEvents, createIndex}
	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}
