package sim

import (
	"context"
	"errors"
	"fmt"

	"delivery-fleet-sim/internal/domain"
	"delivery-fleet-sim/internal/graph"
	"delivery-fleet-sim/internal/ports"
)

// Dispatcher produces a conflict-free set of assignments each tick.
//
// The algorithm is earliest-deadline-first greedy matching: packages are
// visited in queue order and each one takes the eligible vehicle with
// the cheapest pickup-plus-delivery cost. It does not attempt global
// optimization; determinism and simplicity win over optimality.
type Dispatcher struct {
	paths ports.PathFinder
}

func NewDispatcher(paths ports.PathFinder) *Dispatcher {
	return &Dispatcher{paths: paths}
}

// Dispatch assigns pending packages to available vehicles. Side effects
// are limited to vehicle load/route, package status, and the event log;
// movement belongs to the engine.
//
// Packages whose deadline has already passed fail immediately rather
// than being attempted late. Packages with unreachable destinations fail
// with a single failed event. Packages no vehicle can take this tick
// stay pending for the next one.
func (d *Dispatcher) Dispatch(ctx context.Context, st *State) ([]domain.Assignment, error) {
	var assignments []domain.Assignment

	for _, pkg := range st.Queue.Pending() {
		if pkg.Deadline < st.Tick {
			if err := st.Queue.Mark(pkg, domain.PackageFailed); err != nil {
				return nil, fmt.Errorf("dispatch: %w", err)
			}
			st.Log.Append(domain.Event{Tick: st.Tick, Kind: domain.EventFailed, PackageID: pkg.PackageID})
			continue
		}

		delivery, err := d.paths.ShortestPath(ctx, pkg.Origin, pkg.Destination)
		if err != nil {
			var noPath *graph.NoPathError
			if errors.As(err, &noPath) {
				if err := st.Queue.Mark(pkg, domain.PackageFailed); err != nil {
					return nil, fmt.Errorf("dispatch: %w", err)
				}
				st.Log.Append(domain.Event{Tick: st.Tick, Kind: domain.EventFailed, PackageID: pkg.PackageID})
				continue
			}
			return nil, fmt.Errorf("dispatch: delivery path for package %q: %w", pkg.PackageID, err)
		}

		best, pickup, found, err := d.selectVehicle(ctx, st, pkg, delivery.TotalCost)
		if err != nil {
			return nil, err
		}
		if !found {
			// No eligible vehicle this tick; the package stays pending.
			continue
		}

		legs := domain.LegsFromPath(pickup.Path, pickup.LegCosts)
		legs = append(legs, domain.LegsFromPath(delivery.Path, delivery.LegCosts)...)

		if err := best.LoadPackage(pkg); err != nil {
			return nil, fmt.Errorf("dispatch: %w", err)
		}
		if err := st.Queue.Mark(pkg, domain.PackageAssigned); err != nil {
			return nil, fmt.Errorf("dispatch: %w", err)
		}
		best.Route.Append(legs...)
		if best.Status == domain.VehicleIdle {
			best.Status = domain.VehicleEnRoute
		}

		st.Log.Append(domain.Event{
			Tick:      st.Tick,
			Kind:      domain.EventAssigned,
			VehicleID: best.VehicleID,
			PackageID: pkg.PackageID,
		})
		assignments = append(assignments, domain.Assignment{Vehicle: best, Package: pkg, Legs: legs})
	}

	return assignments, nil
}

// selectVehicle picks the available vehicle minimizing pickup plus
// delivery cost. Vehicles are visited in identifier order and ties keep
// the earlier candidate, so selection is deterministic. An en-route
// vehicle is measured from the end of its planned route to keep its
// route contiguous when the new legs are appended.
func (d *Dispatcher) selectVehicle(
	ctx context.Context,
	st *State,
	pkg *domain.Package,
	deliveryCost float64,
) (*domain.Vehicle, ports.PathResult, bool, error) {
	var (
		best       *domain.Vehicle
		bestPickup ports.PathResult
		bestCost   float64
	)

	for _, v := range st.Fleet.AvailableVehicles() {
		if v.SpareCapacity() < pkg.Weight {
			continue
		}

		start := v.Route.End(v.Location)
		pickup, err := d.paths.ShortestPath(ctx, start, pkg.Origin)
		if err != nil {
			var noPath *graph.NoPathError
			if errors.As(err, &noPath) {
				// This vehicle cannot reach the origin; another might.
				continue
			}
			return nil, ports.PathResult{}, false, fmt.Errorf("dispatch: pickup path for vehicle %q: %w", v.VehicleID, err)
		}

		cost := pickup.TotalCost + deliveryCost
		if best == nil || cost < bestCost {
			best = v
			bestPickup = pickup
			bestCost = cost
		}
	}

	return best, bestPickup, best != nil, nil
}
