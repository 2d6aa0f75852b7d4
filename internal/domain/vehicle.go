package domain

import "fmt"

// VehicleStatus tracks what a vehicle is doing during the current tick.
type VehicleStatus string

const (
	VehicleIdle       VehicleStatus = "idle"
	VehicleEnRoute    VehicleStatus = "en_route"
	VehicleDelivering VehicleStatus = "delivering"
	VehicleBrokenDown VehicleStatus = "broken_down"
)

// Vehicle is a fleet unit that carries packages along a planned route.
// The vehicle owns its route and load; the fleet registry owns the vehicle.
type Vehicle struct {
	VehicleID string
	Capacity  float64
	Location  string
	Status    VehicleStatus
	Route     Route
	// Progress is the traversal cost already consumed on the current leg.
	Progress float64
	Load     []*Package
	// RepairAtTick is the tick at which a broken-down vehicle resumes.
	// Zero means the vehicle is not awaiting repair.
	RepairAtTick int
}

// LoadWeight returns the combined weight of all loaded packages.
func (v *Vehicle) LoadWeight() float64 {
	var total float64
	for _, pkg := range v.Load {
		total += pkg.Weight
	}
	return total
}

// SpareCapacity returns the remaining weight budget.
func (v *Vehicle) SpareCapacity() float64 {
	return v.Capacity - v.LoadWeight()
}

// LoadPackage places a package onto the vehicle, rejecting overweight loads.
func (v *Vehicle) LoadPackage(pkg *Package) error {
	if v.LoadWeight()+pkg.Weight > v.Capacity {
		return fmt.Errorf(
			"load vehicle: vehicle %s over capacity (capacity=%.2f load=%.2f package=%.2f)",
			v.VehicleID, v.Capacity, v.LoadWeight(), pkg.Weight,
		)
	}
	v.Load = append(v.Load, pkg)
	return nil
}

// UnloadPackage removes a package from the load by identifier.
// Unknown identifiers are a no-op.
func (v *Vehicle) UnloadPackage(packageID string) {
	kept := v.Load[:0]
	for _, pkg := range v.Load {
		if pkg.PackageID != packageID {
			kept = append(kept, pkg)
		}
	}
	v.Load = kept
}

// Broken reports whether the vehicle is out of service awaiting repair.
func (v *Vehicle) Broken() bool { return v.Status == VehicleBrokenDown }
