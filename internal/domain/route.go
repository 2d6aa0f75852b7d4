package domain

// RouteLeg is a single edge traversal within a planned route.
type RouteLeg struct {
	From string
	To   string
	Cost float64
}

// Route is an ordered sequence of legs a vehicle will traverse.
// A non-empty route always starts at the owning vehicle's current location.
type Route struct {
	Legs []RouteLeg
}

// Empty reports whether the route has no remaining legs.
func (r Route) Empty() bool { return len(r.Legs) == 0 }

// End returns the final location of the route, or fallback when empty.
func (r Route) End(fallback string) string {
	if len(r.Legs) == 0 {
		return fallback
	}
	return r.Legs[len(r.Legs)-1].To
}

// TotalCost sums the cost of all remaining legs.
func (r Route) TotalCost() float64 {
	var total float64
	for _, leg := range r.Legs {
		total += leg.Cost
	}
	return total
}

// Append extends the route with additional legs.
func (r *Route) Append(legs ...RouteLeg) {
	r.Legs = append(r.Legs, legs...)
}

// LegsFromPath converts a location path into route legs using the
// per-hop costs. len(costs) must equal len(path)-1.
func LegsFromPath(path []string, costs []float64) []RouteLeg {
	legs := make([]RouteLeg, 0, len(costs))
	for i := range costs {
		legs = append(legs, RouteLeg{From: path[i], To: path[i+1], Cost: costs[i]})
	}
	return legs
}
