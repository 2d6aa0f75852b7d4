package domain

// EventKind classifies a simulation outcome record.
type EventKind string

const (
	EventAssigned   EventKind = "assigned"
	EventDelivered  EventKind = "delivered"
	EventFailed     EventKind = "failed"
	EventBrokenDown EventKind = "broken_down"
	EventRepaired   EventKind = "repaired"
)

// Event is one ordered record in the simulation's outcome log.
// Identifiers are preserved verbatim from the scenario input.
type Event struct {
	Tick      int       `json:"tick"`
	Kind      EventKind `json:"kind"`
	VehicleID string    `json:"vehicle_id,omitempty"`
	PackageID string    `json:"package_id,omitempty"`
}
