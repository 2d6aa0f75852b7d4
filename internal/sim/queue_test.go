package sim

import (
	"errors"
	"testing"

	"delivery-fleet-sim/internal/domain"
)

func TestPendingOrdersByDeadlineThenID(t *testing.T) {
	q := NewDeliveryQueue([]*domain.Package{
		{PackageID: "p3", Deadline: 5, Status: domain.PackagePending},
		{PackageID: "p1", Deadline: 9, Status: domain.PackagePending},
		{PackageID: "p2", Deadline: 5, Status: domain.PackagePending},
	})

	pending := q.Pending()
	got := make([]string, 0, len(pending))
	for _, pkg := range pending {
		got = append(got, pkg.PackageID)
	}

	want := []string{"p2", "p3", "p1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pending order = %v, want %v", got, want)
		}
	}
}

func TestPendingExcludesNonPending(t *testing.T) {
	q := NewDeliveryQueue([]*domain.Package{
		{PackageID: "p1", Deadline: 1, Status: domain.PackageAssigned},
		{PackageID: "p2", Deadline: 2, Status: domain.PackagePending},
		{PackageID: "p3", Deadline: 3, Status: domain.PackageDelivered},
	})

	pending := q.Pending()
	if len(pending) != 1 || pending[0].PackageID != "p2" {
		t.Fatalf("pending = %v, want just p2", pending)
	}
}

func TestMarkFollowsStateMachine(t *testing.T) {
	pkg := &domain.Package{PackageID: "p1", Status: domain.PackagePending}
	q := NewDeliveryQueue([]*domain.Package{pkg})

	steps := []domain.PackageStatus{
		domain.PackageAssigned,
		domain.PackageInTransit,
		domain.PackageDelivered,
	}
	for _, status := range steps {
		if err := q.Mark(pkg, status); err != nil {
			t.Fatalf("transition to %s: unexpected error: %v", status, err)
		}
	}
}

func TestMarkRejectsIllegalTransition(t *testing.T) {
	pkg := &domain.Package{PackageID: "p1", Status: domain.PackageDelivered}
	q := NewDeliveryQueue([]*domain.Package{pkg})

	err := q.Mark(pkg, domain.PackagePending)
	var invalid *domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if pkg.Status != domain.PackageDelivered {
		t.Fatalf("status changed to %s on rejected transition", pkg.Status)
	}
}

func TestTerminalStatusesNeverRevert(t *testing.T) {
	for _, terminal := range []domain.PackageStatus{domain.PackageDelivered, domain.PackageFailed} {
		pkg := &domain.Package{PackageID: "p1", Status: terminal}
		q := NewDeliveryQueue([]*domain.Package{pkg})

		for _, next := range []domain.PackageStatus{
			domain.PackagePending,
			domain.PackageAssigned,
			domain.PackageInTransit,
			domain.PackageDelivered,
			domain.PackageFailed,
		} {
			if err := q.Mark(pkg, next); err == nil {
				t.Fatalf("transition %s -> %s should fail", terminal, next)
			}
		}
	}
}

func TestOpenCount(t *testing.T) {
	q := NewDeliveryQueue([]*domain.Package{
		{PackageID: "p1", Status: domain.PackagePending},
		{PackageID: "p2", Status: domain.PackageInTransit},
		{PackageID: "p3", Status: domain.PackageDelivered},
		{PackageID: "p4", Status: domain.PackageFailed},
	})

	if got := q.OpenCount(); got != 2 {
		t.Fatalf("open count = %d, want 2", got)
	}
}
