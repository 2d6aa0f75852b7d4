package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"delivery-fleet-sim/internal/platform/obs"
	"delivery-fleet-sim/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache is a redis-backed cache for resolved shortest paths.
// The location graph is immutable for the lifetime of a run, so cached
// entries are stored without expiry. The namespace keeps entries from
// different scenarios apart; use something stable per graph, e.g. a
// scenario content hash.
type RedisRouteCache struct {
	Client    *redis.Client
	Namespace string
}

func NewRedisRouteCache(client *redis.Client, namespace string) *RedisRouteCache {
	return &RedisRouteCache{Client: client, Namespace: namespace}
}

type cachedPath struct {
	Path      []string  `json:"path"`
	LegCosts  []float64 `json:"leg_costs"`
	TotalCost float64   `json:"total_cost"`
}

func (c *RedisRouteCache) routeKey(from, to string) string {
	return "route:" + c.Namespace + ":" + from + "|" + to
}

// Get returns the cached path for an origin/destination pair.
func (c *RedisRouteCache) Get(ctx context.Context, from, to string) (_ ports.PathResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.Client == nil {
		return ports.PathResult{}, false, errors.New("route cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, c.routeKey(from, to)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.PathResult{}, false, nil
	}
	if err != nil {
		return ports.PathResult{}, false, fmt.Errorf("route cache: get %q -> %q: %w", from, to, err)
	}

	var entry cachedPath
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return ports.PathResult{}, false, fmt.Errorf("route cache: decode %q -> %q: %w", from, to, err)
	}

	return ports.PathResult{Path: entry.Path, LegCosts: entry.LegCosts, TotalCost: entry.TotalCost}, true, nil
}

// Put stores a resolved path for an origin/destination pair.
func (c *RedisRouteCache) Put(ctx context.Context, from, to string, result ports.PathResult) error {
	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	data, err := json.Marshal(cachedPath{
		Path:      result.Path,
		LegCosts:  result.LegCosts,
		TotalCost: result.TotalCost,
	})
	if err != nil {
		return fmt.Errorf("route cache: encode %q -> %q: %w", from, to, err)
	}

	if err := c.Client.Set(ctx, c.routeKey(from, to), data, 0).Err(); err != nil {
		return fmt.Errorf("route cache: set %q -> %q: %w", from, to, err)
	}
	return nil
}
