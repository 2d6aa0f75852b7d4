package cache

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"delivery-fleet-sim/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testCache(t *testing.T, namespace string) *RedisRouteCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRouteCache(client, namespace)
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c := testCache(t, "test")
	ctx := context.Background()

	want := ports.PathResult{
		Path:      []string{"L1", "L2", "L3"},
		LegCosts:  []float64{1, 2},
		TotalCost: 3,
	}
	if err := c.Put(ctx, "L1", "L3", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "L1", "L3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !slices.Equal(got.Path, want.Path) || !slices.Equal(got.LegCosts, want.LegCosts) || got.TotalCost != want.TotalCost {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRedisRouteCacheMiss(t *testing.T) {
	c := testCache(t, "test")

	_, ok, err := c.Get(context.Background(), "L1", "L2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRedisRouteCacheNamespacesAreIsolated(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := NewRedisRouteCache(client, "scenario-a")
	b := NewRedisRouteCache(client, "scenario-b")
	ctx := context.Background()

	if err := a.Put(ctx, "L1", "L2", ports.PathResult{Path: []string{"L1", "L2"}, LegCosts: []float64{1}, TotalCost: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := b.Get(ctx, "L1", "L2"); ok {
		t.Fatal("entry leaked across namespaces")
	}
}

// countingFinder counts how many queries reach the underlying graph.
type countingFinder struct {
	calls int
}

func (f *countingFinder) ShortestPath(_ context.Context, from, to string) (ports.PathResult, error) {
	f.calls++
	return ports.PathResult{Path: []string{from, to}, LegCosts: []float64{1}, TotalCost: 1}, nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, string) (ports.PathResult, bool, error) {
	return ports.PathResult{}, false, fmt.Errorf("cache down")
}
func (failingCache) Put(context.Context, string, string, ports.PathResult) error {
	return fmt.Errorf("cache down")
}

func TestCachedPathFinderServesRepeatsFromCache(t *testing.T) {
	inner := &countingFinder{}
	finder := NewCachedPathFinder(inner, testCache(t, "test"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := finder.ShortestPath(ctx, "L1", "L2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.TotalCost != 1 {
			t.Fatalf("cost = %.2f, want 1", res.TotalCost)
		}
	}

	if inner.calls != 1 {
		t.Fatalf("underlying calls = %d, want 1", inner.calls)
	}
}

func TestCachedPathFinderDegradesWhenCacheFails(t *testing.T) {
	inner := &countingFinder{}
	finder := NewCachedPathFinder(inner, failingCache{})

	res, err := finder.ShortestPath(context.Background(), "L1", "L2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalCost != 1 || inner.calls != 1 {
		t.Fatalf("expected direct lookup, got cost=%.2f calls=%d", res.TotalCost, inner.calls)
	}
}
