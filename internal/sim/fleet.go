package sim

import (
	"slices"

	"delivery-fleet-sim/internal/domain"
)

// FleetRegistry owns the vehicle entities and answers availability
// queries in deterministic identifier order.
type FleetRegistry struct {
	vehicles map[string]*domain.Vehicle
	ids      []string
}

func NewFleetRegistry(fleet []*domain.Vehicle) *FleetRegistry {
	r := &FleetRegistry{vehicles: make(map[string]*domain.Vehicle, len(fleet))}
	for _, v := range fleet {
		r.vehicles[v.VehicleID] = v
		r.ids = append(r.ids, v.VehicleID)
	}
	slices.Sort(r.ids)
	return r
}

// Get returns the vehicle with the given identifier.
func (r *FleetRegistry) Get(id string) (*domain.Vehicle, bool) {
	v, ok := r.vehicles[id]
	return v, ok
}

// Vehicles returns all vehicles ordered by identifier.
func (r *FleetRegistry) Vehicles() []*domain.Vehicle {
	out := make([]*domain.Vehicle, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.vehicles[id])
	}
	return out
}

// AvailableVehicles returns vehicles eligible for new assignments: idle,
// or en route with spare capacity. Broken-down vehicles are excluded
// until repair completes.
func (r *FleetRegistry) AvailableVehicles() []*domain.Vehicle {
	var out []*domain.Vehicle
	for _, id := range r.ids {
		v := r.vehicles[id]
		switch v.Status {
		case domain.VehicleIdle:
			out = append(out, v)
		case domain.VehicleEnRoute:
			if v.SpareCapacity() > 0 {
				out = append(out, v)
			}
		}
	}
	return out
}

// Advance moves a vehicle along its route by up to deltaCost traversal
// cost and returns the locations it arrived at, in order. An empty route
// is a no-op. Leftover budget is discarded when the route runs out.
func (r *FleetRegistry) Advance(v *domain.Vehicle, deltaCost float64) []string {
	var arrivals []string
	remaining := deltaCost

	for remaining > 0 && !v.Route.Empty() {
		leg := v.Route.Legs[0]
		needed := leg.Cost - v.Progress

		if remaining < needed {
			v.Progress += remaining
			break
		}

		remaining -= needed
		v.Location = leg.To
		v.Progress = 0
		v.Route.Legs = v.Route.Legs[1:]
		arrivals = append(arrivals, leg.To)
	}

	return arrivals
}
