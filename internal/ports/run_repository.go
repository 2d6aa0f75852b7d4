package ports

import (
	"context"

	"delivery-fleet-sim/internal/domain"
)

// RunRecord is a persisted simulation outcome: the summary plus the full
// ordered event log. The JSON form is what `fleetsim -record` writes and
// `dbtool` imports.
type RunRecord struct {
	RunID         string         `json:"run_id"`
	Scenario      string         `json:"scenario"`
	Seed          int64          `json:"seed"`
	Ticks         int            `json:"ticks"`
	Delivered     int            `json:"delivered"`
	Failed        int            `json:"failed"`
	Late          int            `json:"late"`
	TotalDistance float64        `json:"total_distance"`
	TimedOut      bool           `json:"timed_out"`
	Events        []domain.Event `json:"events"`
}

// Port: a boundary for archiving completed simulation runs.
type RunRepository interface {
	// SaveRun persists a run summary and its event log.
	SaveRun(ctx context.Context, record RunRecord) error
}
