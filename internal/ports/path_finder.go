package ports

import "context"

// PathResult is a fully resolved shortest path between two locations.
type PathResult struct {
	Path      []string
	LegCosts  []float64
	TotalCost float64
}

// Contract for resolving shortest paths through the location network.
type PathFinder interface {
	// Return the cheapest path between two locations with per-leg costs.
	ShortestPath(ctx context.Context, from, to string) (PathResult, error)
}
