package domain

// Breakdown is a scenario-scripted vehicle failure: the vehicle goes out
// of service at Tick and resumes after RepairTicks further ticks.
type Breakdown struct {
	VehicleID   string
	Tick        int
	RepairTicks int
}
