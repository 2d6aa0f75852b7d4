package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-fleet-sim/internal/platform/obs"
	"delivery-fleet-sim/internal/ports"
)

// SQL-backed implementation of the RunRepository port. The statements
// use $N placeholders and portable column types, so the same code runs
// against the local sqlite archive and the postgres one.
type SQLRunRepository struct{ DB *sql.DB }

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

// SaveRun persists a run summary and its full event log in one
// transaction. Saving the same run id again replaces the previous rows.
func (s *SQLRunRepository) SaveRun(ctx context.Context, record ports.RunRecord) (err error) {
	defer obs.Time(ctx, "runs.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("run repository: DB is nil")
	}
	if record.RunID == "" {
		return errors.New("save run: run id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_events WHERE run_id = $1;`, record.RunID); err != nil {
		return fmt.Errorf("save run: clear previous events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_id = $1;`, record.RunID); err != nil {
		return fmt.Errorf("save run: clear previous run: %w", err)
	}

	timedOut := 0
	if record.TimedOut {
		timedOut = 1
	}

	insertRun := `
	INSERT INTO runs (run_id, scenario, seed, ticks, delivered, failed, late, total_distance, timed_out)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.ExecContext(ctx, insertRun,
		record.RunID, record.Scenario, record.Seed, record.Ticks,
		record.Delivered, record.Failed, record.Late, record.TotalDistance, timedOut,
	); err != nil {
		return fmt.Errorf("save run: insert run %q: %w", record.RunID, err)
	}

	insertEvent := `
	INSERT INTO run_events (run_id, seq, tick, kind, vehicle_id, package_id)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return fmt.Errorf("save run: prepare event insert: %w", err)
	}
	defer stmt.Close()

	for seq, evt := range record.Events {
		if _, err := stmt.ExecContext(ctx, record.RunID, seq, evt.Tick, string(evt.Kind), evt.VehicleID, evt.PackageID); err != nil {
			return fmt.Errorf("save run: insert event seq=%d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit tx: %w", err)
	}
	return nil
}
