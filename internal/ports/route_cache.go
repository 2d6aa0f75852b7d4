package ports

import "context"

// RouteCache stores resolved shortest paths keyed by origin/destination.
// The graph is immutable after scenario load, so entries never go stale
// within a run.
type RouteCache interface {
	// Get returns a cached path result and whether it was present.
	Get(ctx context.Context, from, to string) (PathResult, bool, error)
	// Put stores a path result for an origin/destination pair.
	Put(ctx context.Context, from, to string, result PathResult) error
}
