package domain

import "fmt"

// PackageStatus tracks a package through its delivery lifecycle.
type PackageStatus string

const (
	PackagePending   PackageStatus = "pending"
	PackageAssigned  PackageStatus = "assigned"
	PackageInTransit PackageStatus = "in_transit"
	PackageDelivered PackageStatus = "delivered"
	PackageFailed    PackageStatus = "failed"
)

// Legal status transitions. delivered and failed are terminal.
var packageTransitions = map[PackageStatus][]PackageStatus{
	PackagePending:   {PackageAssigned, PackageFailed},
	PackageAssigned:  {PackageInTransit, PackageFailed},
	PackageInTransit: {PackageDelivered, PackageFailed},
}

// InvalidTransitionError reports an illegal package status transition.
// It indicates a bug in the caller, not recoverable input.
type InvalidTransitionError struct {
	PackageID string
	From      PackageStatus
	To        PackageStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("package %s: invalid transition %s -> %s", e.PackageID, e.From, e.To)
}

// Package is a single delivery unit moving from an origin to a destination.
// The deadline is the last tick at which delivery still counts as on time.
type Package struct {
	PackageID   string
	Origin      string
	Destination string
	Weight      float64
	Deadline    int
	Status      PackageStatus
	DeliveredAt *int
}

// Transition moves the package to the given status, enforcing the
// lifecycle state machine.
func (p *Package) Transition(to PackageStatus) error {
	for _, allowed := range packageTransitions[p.Status] {
		if allowed == to {
			p.Status = to
			return nil
		}
	}
	return &InvalidTransitionError{PackageID: p.PackageID, From: p.Status, To: to}
}

// Terminal reports whether the package has reached a final status.
func (p *Package) Terminal() bool {
	return p.Status == PackageDelivered || p.Status == PackageFailed
}
