package graph

import (
	"context"
	"errors"
	"slices"
	"testing"

	"delivery-fleet-sim/internal/domain"
)

func buildGraph(t *testing.T, locations []string, connections []domain.Connection) *Graph {
	t.Helper()
	locs := make([]domain.Location, 0, len(locations))
	for _, id := range locations {
		locs = append(locs, domain.Location{ID: id})
	}
	g, err := New(locs, connections)
	if err != nil {
		t.Fatalf("unexpected error building graph: %v", err)
	}
	return g
}

func TestShortestPathPrefersCheaperMultiHop(t *testing.T) {
	g := buildGraph(t,
		[]string{"A", "B", "C"},
		[]domain.Connection{
			{From: "A", To: "C", Cost: 10},
			{From: "A", To: "B", Cost: 2},
			{From: "B", To: "C", Cost: 3},
		},
	)

	res, err := g.ShortestPath(context.Background(), "A", "C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(res.Path, []string{"A", "B", "C"}) {
		t.Fatalf("path = %v, want [A B C]", res.Path)
	}
	if res.TotalCost != 5 {
		t.Fatalf("cost = %.2f, want 5", res.TotalCost)
	}
	if !slices.Equal(res.LegCosts, []float64{2, 3}) {
		t.Fatalf("leg costs = %v, want [2 3]", res.LegCosts)
	}
}

func TestShortestPathBreaksTiesByLowestIdentifier(t *testing.T) {
	// Two equal-cost paths A->B->D and A->C->D; the path through B wins.
	g := buildGraph(t,
		[]string{"A", "B", "C", "D"},
		[]domain.Connection{
			{From: "A", To: "C", Cost: 1},
			{From: "A", To: "B", Cost: 1},
			{From: "B", To: "D", Cost: 1},
			{From: "C", To: "D", Cost: 1},
		},
	)

	res, err := g.ShortestPath(context.Background(), "A", "D")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(res.Path, []string{"A", "B", "D"}) {
		t.Fatalf("path = %v, want [A B D]", res.Path)
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	g := buildGraph(t,
		[]string{"A", "B", "C"},
		[]domain.Connection{{From: "A", To: "B", Cost: 1}},
	)

	_, err := g.ShortestPath(context.Background(), "A", "C")
	var noPath *NoPathError
	if !errors.As(err, &noPath) {
		t.Fatalf("expected NoPathError, got %v", err)
	}
	if noPath.From != "A" || noPath.To != "C" {
		t.Fatalf("NoPathError endpoints = %q -> %q", noPath.From, noPath.To)
	}
}

func TestShortestPathRespectsEdgeDirection(t *testing.T) {
	g := buildGraph(t,
		[]string{"A", "B"},
		[]domain.Connection{{From: "A", To: "B", Cost: 1}},
	)

	if _, err := g.ShortestPath(context.Background(), "A", "B"); err != nil {
		t.Fatalf("forward path: unexpected error: %v", err)
	}

	_, err := g.ShortestPath(context.Background(), "B", "A")
	var noPath *NoPathError
	if !errors.As(err, &noPath) {
		t.Fatalf("reverse path: expected NoPathError, got %v", err)
	}
}

func TestShortestPathSameLocation(t *testing.T) {
	g := buildGraph(t, []string{"A"}, nil)

	res, err := g.ShortestPath(context.Background(), "A", "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(res.Path, []string{"A"}) || res.TotalCost != 0 {
		t.Fatalf("path = %v cost = %.2f, want [A] and 0", res.Path, res.TotalCost)
	}
}

func TestShortestPathUnknownLocation(t *testing.T) {
	g := buildGraph(t, []string{"A"}, nil)
	if _, err := g.ShortestPath(context.Background(), "A", "missing"); err == nil {
		t.Fatal("expected error for unknown destination")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(
		[]domain.Location{{ID: "A"}, {ID: "A"}},
		nil,
	); err == nil {
		t.Fatal("expected error for duplicate location")
	}

	if _, err := New(
		[]domain.Location{{ID: "A"}, {ID: "B"}},
		[]domain.Connection{{From: "A", To: "B", Cost: 0}},
	); err == nil {
		t.Fatal("expected error for non-positive cost")
	}

	if _, err := New(
		[]domain.Location{{ID: "A"}},
		[]domain.Connection{{From: "A", To: "B", Cost: 1}},
	); err == nil {
		t.Fatal("expected error for unknown endpoint")
	}
}
