package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"delivery-fleet-sim/internal/domain"
)

// EventLog is the ordered record of simulation outcomes. Given the same
// scenario and seed, two runs produce byte-identical exports.
type EventLog struct {
	events []domain.Event
}

func NewEventLog() *EventLog { return &EventLog{} }

// Append records an event at the end of the log.
func (l *EventLog) Append(evt domain.Event) {
	l.events = append(l.events, evt)
}

// Events returns a copy of the recorded events in order.
func (l *EventLog) Events() []domain.Event {
	return slices.Clone(l.events)
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int { return len(l.events) }

// CountKind returns how many events of the given kind were recorded.
func (l *EventLog) CountKind(kind domain.EventKind) int {
	n := 0
	for _, evt := range l.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

// Export writes the event log as indented JSON, suitable for replay or
// grading verification.
func (l *EventLog) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l.events); err != nil {
		return fmt.Errorf("export event log: %w", err)
	}
	return nil
}
