package domain

// Location is a named point in the delivery network.
// Coordinates are optional scenario metadata; routing uses edge costs only.
// Immutable after scenario load.
type Location struct {
	ID string
	X  float64
	Y  float64
}

// Connection is a directed traversable edge between two locations with a
// positive cost. Undirected scenario edges are loaded as two connections.
type Connection struct {
	From string
	To   string
	Cost float64
}
