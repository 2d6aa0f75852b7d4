package sim

import "delivery-fleet-sim/internal/domain"

// State is the single authoritative snapshot of one running simulation:
// the tick counter, the fleet, the delivery queue, and the event log.
// Exactly one instance exists per run and it is passed explicitly; there
// are no ambient singletons, so multiple simulations can run side by
// side in one process.
type State struct {
	Tick  int
	Fleet *FleetRegistry
	Queue *DeliveryQueue
	Log   *EventLog
}

func NewState(fleet []*domain.Vehicle, pkgs []*domain.Package) *State {
	return &State{
		Fleet: NewFleetRegistry(fleet),
		Queue: NewDeliveryQueue(pkgs),
		Log:   NewEventLog(),
	}
}
