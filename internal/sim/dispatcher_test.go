package sim

import (
	"context"
	"testing"

	"delivery-fleet-sim/internal/domain"
	"delivery-fleet-sim/internal/graph"
)

func lineGraph(t *testing.T, ids []string, cost float64) *graph.Graph {
	t.Helper()
	locs := make([]domain.Location, 0, len(ids))
	var conns []domain.Connection
	for i, id := range ids {
		locs = append(locs, domain.Location{ID: id})
		if i > 0 {
			conns = append(conns,
				domain.Connection{From: ids[i-1], To: id, Cost: cost},
				domain.Connection{From: id, To: ids[i-1], Cost: cost},
			)
		}
	}
	g, err := graph.New(locs, conns)
	if err != nil {
		t.Fatalf("unexpected error building graph: %v", err)
	}
	return g
}

func TestDispatchEarliestDeadlineFirst(t *testing.T) {
	g := lineGraph(t, []string{"L1", "L2"}, 1)

	urgent := &domain.Package{PackageID: "pB", Origin: "L1", Destination: "L2", Weight: 1, Deadline: 2, Status: domain.PackagePending}
	relaxed := &domain.Package{PackageID: "pA", Origin: "L1", Destination: "L2", Weight: 1, Deadline: 9, Status: domain.PackagePending}
	vehicle := &domain.Vehicle{VehicleID: "v1", Capacity: 1, Location: "L1", Status: domain.VehicleIdle}

	st := NewState([]*domain.Vehicle{vehicle}, []*domain.Package{relaxed, urgent})
	st.Tick = 1

	assignments, err := NewDispatcher(g).Dispatch(context.Background(), st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assignments) != 1 {
		t.Fatalf("assignments = %d, want 1", len(assignments))
	}
	if assignments[0].Package.PackageID != "pB" {
		t.Fatalf("assigned %s, want the earlier deadline pB", assignments[0].Package.PackageID)
	}
	if urgent.Status != domain.PackageAssigned {
		t.Fatalf("urgent status = %s, want assigned", urgent.Status)
	}
	if relaxed.Status != domain.PackagePending {
		t.Fatalf("relaxed status = %s, want pending", relaxed.Status)
	}
}

func TestDispatchFailsExpiredDeadline(t *testing.T) {
	g := lineGraph(t, []string{"L1", "L2"}, 1)

	pkg := &domain.Package{PackageID: "p1", Origin: "L1", Destination: "L2", Weight: 1, Deadline: 0, Status: domain.PackagePending}
	vehicle := &domain.Vehicle{VehicleID: "v1", Capacity: 1, Location: "L1", Status: domain.VehicleIdle}

	st := NewState([]*domain.Vehicle{vehicle}, []*domain.Package{pkg})
	st.Tick = 1

	assignments, err := NewDispatcher(g).Dispatch(context.Background(), st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assignments) != 0 {
		t.Fatalf("assignments = %d, want 0", len(assignments))
	}
	if pkg.Status != domain.PackageFailed {
		t.Fatalf("status = %s, want failed", pkg.Status)
	}
	if len(vehicle.Load) != 0 {
		t.Fatalf("vehicle loaded an expired package")
	}
	if got := st.Log.CountKind(domain.EventAssigned); got != 0 {
		t.Fatalf("assigned events = %d, want 0", got)
	}
}

func TestDispatchFailsUnreachableDestination(t *testing.T) {
	// L3 exists but nothing connects to it.
	locs := []domain.Location{{ID: "L1"}, {ID: "L2"}, {ID: "L3"}}
	conns := []domain.Connection{
		{From: "L1", To: "L2", Cost: 1},
		{From: "L2", To: "L1", Cost: 1},
	}
	g, err := graph.New(locs, conns)
	if err != nil {
		t.Fatalf("unexpected error building graph: %v", err)
	}

	pkg := &domain.Package{PackageID: "p1", Origin: "L1", Destination: "L3", Weight: 1, Deadline: 9, Status: domain.PackagePending}
	vehicle := &domain.Vehicle{VehicleID: "v1", Capacity: 1, Location: "L1", Status: domain.VehicleIdle}

	st := NewState([]*domain.Vehicle{vehicle}, []*domain.Package{pkg})
	st.Tick = 1

	if _, err := NewDispatcher(g).Dispatch(context.Background(), st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pkg.Status != domain.PackageFailed {
		t.Fatalf("status = %s, want failed", pkg.Status)
	}
	if got := st.Log.CountKind(domain.EventFailed); got != 1 {
		t.Fatalf("failed events = %d, want exactly 1", got)
	}

	// A second dispatch must not touch the terminal package again.
	if _, err := NewDispatcher(g).Dispatch(context.Background(), st); err != nil {
		t.Fatalf("unexpected error on second dispatch: %v", err)
	}
	if got := st.Log.CountKind(domain.EventFailed); got != 1 {
		t.Fatalf("failed events after second dispatch = %d, want 1", got)
	}
}

func TestDispatchRespectsCapacityWithinTick(t *testing.T) {
	g := lineGraph(t, []string{"L1", "L2"}, 1)

	pkgs := []*domain.Package{
		{PackageID: "p1", Origin: "L1", Destination: "L2", Weight: 2, Deadline: 9, Status: domain.PackagePending},
		{PackageID: "p2", Origin: "L1", Destination: "L2", Weight: 2, Deadline: 9, Status: domain.PackagePending},
	}
	vehicle := &domain.Vehicle{VehicleID: "v1", Capacity: 3, Location: "L1", Status: domain.VehicleIdle}

	st := NewState([]*domain.Vehicle{vehicle}, pkgs)
	st.Tick = 1

	assignments, err := NewDispatcher(g).Dispatch(context.Background(), st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assignments) != 1 {
		t.Fatalf("assignments = %d, want 1", len(assignments))
	}
	if vehicle.LoadWeight() > vehicle.Capacity {
		t.Fatalf("load %.2f exceeds capacity %.2f", vehicle.LoadWeight(), vehicle.Capacity)
	}
	if pkgs[1].Status != domain.PackagePending {
		t.Fatalf("second package status = %s, want pending (deferred)", pkgs[1].Status)
	}
}

func TestDispatchPicksNearestVehicleThenLowestID(t *testing.T) {
	g := lineGraph(t, []string{"L1", "L2", "L3"}, 1)

	pkg := &domain.Package{PackageID: "p1", Origin: "L2", Destination: "L3", Weight: 1, Deadline: 9, Status: domain.PackagePending}
	far := &domain.Vehicle{VehicleID: "v1", Capacity: 1, Location: "L1", Status: domain.VehicleIdle}
	near := &domain.Vehicle{VehicleID: "v2", Capacity: 1, Location: "L2", Status: domain.VehicleIdle}

	st := NewState([]*domain.Vehicle{far, near}, []*domain.Package{pkg})
	st.Tick = 1

	assignments, err := NewDispatcher(g).Dispatch(context.Background(), st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 1 || assignments[0].Vehicle.VehicleID != "v2" {
		t.Fatalf("expected nearest vehicle v2, got %v", assignments)
	}

	// Equidistant vehicles: the lower identifier wins.
	pkg2 := &domain.Package{PackageID: "p2", Origin: "L1", Destination: "L2", Weight: 1, Deadline: 9, Status: domain.PackagePending}
	a := &domain.Vehicle{VehicleID: "v1", Capacity: 1, Location: "L1", Status: domain.VehicleIdle}
	b := &domain.Vehicle{VehicleID: "v2", Capacity: 1, Location: "L1", Status: domain.VehicleIdle}

	st2 := NewState([]*domain.Vehicle{b, a}, []*domain.Package{pkg2})
	st2.Tick = 1

	assignments, err = NewDispatcher(g).Dispatch(context.Background(), st2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 1 || assignments[0].Vehicle.VehicleID != "v1" {
		t.Fatalf("expected lowest-id vehicle v1, got %v", assignments)
	}
}
