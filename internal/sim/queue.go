package sim

import (
	"fmt"
	"slices"

	"delivery-fleet-sim/internal/domain"
)

// DeliveryQueue owns every package in the simulation and tracks each one
// until it reaches a terminal status.
type DeliveryQueue struct {
	packages map[string]*domain.Package
	ids      []string
}

func NewDeliveryQueue(pkgs []*domain.Package) *DeliveryQueue {
	q := &DeliveryQueue{packages: make(map[string]*domain.Package, len(pkgs))}
	for _, pkg := range pkgs {
		q.packages[pkg.PackageID] = pkg
		q.ids = append(q.ids, pkg.PackageID)
	}
	slices.Sort(q.ids)
	return q
}

// Get returns the package with the given identifier.
func (q *DeliveryQueue) Get(id string) (*domain.Package, bool) {
	pkg, ok := q.packages[id]
	return pkg, ok
}

// Pending returns pending packages ordered by (deadline ascending,
// identifier ascending), giving the dispatcher earliest-deadline-first
// visibility.
func (q *DeliveryQueue) Pending() []*domain.Package {
	var pending []*domain.Package
	for _, id := range q.ids {
		if q.packages[id].Status == domain.PackagePending {
			pending = append(pending, q.packages[id])
		}
	}
	slices.SortFunc(pending, func(a, b *domain.Package) int {
		if a.Deadline != b.Deadline {
			return a.Deadline - b.Deadline
		}
		if a.PackageID < b.PackageID {
			return -1
		}
		if a.PackageID > b.PackageID {
			return 1
		}
		return 0
	})
	return pending
}

// Mark transitions a package to the given status through its state
// machine. Illegal transitions surface as InvalidTransitionError.
func (q *DeliveryQueue) Mark(pkg *domain.Package, status domain.PackageStatus) error {
	if _, ok := q.packages[pkg.PackageID]; !ok {
		return fmt.Errorf("mark package: unknown package %q", pkg.PackageID)
	}
	return pkg.Transition(status)
}

// OpenCount returns the number of packages not yet in a terminal status.
func (q *DeliveryQueue) OpenCount() int {
	open := 0
	for _, id := range q.ids {
		if !q.packages[id].Terminal() {
			open++
		}
	}
	return open
}

// Count returns the total number of packages in the queue.
func (q *DeliveryQueue) Count() int { return len(q.ids) }

// CountByStatus returns how many packages currently hold the status.
func (q *DeliveryQueue) CountByStatus(status domain.PackageStatus) int {
	n := 0
	for _, id := range q.ids {
		if q.packages[id].Status == status {
			n++
		}
	}
	return n
}
