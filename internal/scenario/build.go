package scenario

import (
	"fmt"

	"delivery-fleet-sim/internal/domain"
	"delivery-fleet-sim/internal/graph"
)

// BuildGraph constructs the immutable location network from the scenario.
func (sc *Scenario) BuildGraph() (*graph.Graph, error) {
	locations := make([]domain.Location, 0, len(sc.Locations))
	var connections []domain.Connection

	for _, loc := range sc.Locations {
		locations = append(locations, domain.Location{ID: loc.ID, X: loc.X, Y: loc.Y})
		for _, conn := range loc.Connections {
			connections = append(connections, domain.Connection{From: loc.ID, To: conn.To, Cost: conn.Cost})
			if !conn.Directed {
				connections = append(connections, domain.Connection{From: conn.To, To: loc.ID, Cost: conn.Cost})
			}
		}
	}

	g, err := graph.New(locations, connections)
	if err != nil {
		return nil, fmt.Errorf("build scenario graph: %w", err)
	}
	return g, nil
}

// BuildFleet constructs the initial vehicle entities, all idle at their
// start locations.
func (sc *Scenario) BuildFleet() []*domain.Vehicle {
	fleet := make([]*domain.Vehicle, 0, len(sc.Vehicles))
	for _, v := range sc.Vehicles {
		fleet = append(fleet, &domain.Vehicle{
			VehicleID: v.ID,
			Capacity:  v.Capacity,
			Location:  v.StartLocation,
			Status:    domain.VehicleIdle,
		})
	}
	return fleet
}

// BuildPackages constructs the initial package entities, all pending.
func (sc *Scenario) BuildPackages() []*domain.Package {
	pkgs := make([]*domain.Package, 0, len(sc.Packages))
	for _, p := range sc.Packages {
		pkgs = append(pkgs, &domain.Package{
			PackageID:   p.ID,
			Origin:      p.Origin,
			Destination: p.Destination,
			Weight:      p.Weight,
			Deadline:    p.Deadline,
			Status:      domain.PackagePending,
		})
	}
	return pkgs
}

// BuildBreakdowns converts the scripted breakdown entries.
func (sc *Scenario) BuildBreakdowns() []domain.Breakdown {
	out := make([]domain.Breakdown, 0, len(sc.Breakdowns))
	for _, b := range sc.Breakdowns {
		out = append(out, domain.Breakdown{VehicleID: b.Vehicle, Tick: b.Tick, RepairTicks: b.RepairTicks})
	}
	return out
}
