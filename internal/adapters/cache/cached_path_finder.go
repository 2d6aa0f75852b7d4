package cache

import (
	"context"
	"log"

	"delivery-fleet-sim/internal/ports"
)

// CachedPathFinder wraps a PathFinder with a RouteCache. Cache failures
// degrade to a direct lookup rather than failing the query; path errors
// (including disconnection) pass through unwrapped so callers can still
// branch on them.
type CachedPathFinder struct {
	Inner ports.PathFinder
	Cache ports.RouteCache
}

func NewCachedPathFinder(inner ports.PathFinder, cache ports.RouteCache) *CachedPathFinder {
	return &CachedPathFinder{Inner: inner, Cache: cache}
}

func (f *CachedPathFinder) ShortestPath(ctx context.Context, from, to string) (ports.PathResult, error) {
	result, ok, err := f.Cache.Get(ctx, from, to)
	if err != nil {
		log.Printf("route cache get failed from=%q to=%q err=%v", from, to, err)
	} else if ok {
		return result, nil
	}

	result, err = f.Inner.ShortestPath(ctx, from, to)
	if err != nil {
		return result, err
	}

	if err := f.Cache.Put(ctx, from, to, result); err != nil {
		log.Printf("route cache put failed from=%q to=%q err=%v", from, to, err)
	}
	return result, nil
}
