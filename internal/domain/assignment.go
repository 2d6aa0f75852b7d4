package domain

// Assignment binds a package to a vehicle with the legs the vehicle will
// traverse to serve it. Assignments are transient dispatcher output and
// are not persisted beyond the tick that produced them.
type Assignment struct {
	Vehicle *Vehicle
	Package *Package
	Legs    []RouteLeg
}
