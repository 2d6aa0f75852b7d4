package graph

import (
	"fmt"
	"slices"

	"delivery-fleet-sim/internal/domain"
)

// NoPathError reports that two locations are not connected.
type NoPathError struct {
	From string
	To   string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path from %q to %q", e.From, e.To)
}

type edge struct {
	to   string
	cost float64
}

// Graph is an immutable weighted directed location network.
// All mutation happens at construction; path queries are safe to share.
type Graph struct {
	locations map[string]domain.Location
	adjacency map[string][]edge
	ids       []string
}

// New builds a graph from scenario locations and connections.
// Connection endpoints must reference known locations and costs must be
// positive; violations are construction errors, not runtime ones.
func New(locations []domain.Location, connections []domain.Connection) (*Graph, error) {
	g := &Graph{
		locations: make(map[string]domain.Location, len(locations)),
		adjacency: make(map[string][]edge, len(locations)),
	}

	for _, loc := range locations {
		if _, ok := g.locations[loc.ID]; ok {
			return nil, fmt.Errorf("build graph: duplicate location %q", loc.ID)
		}
		g.locations[loc.ID] = loc
		g.ids = append(g.ids, loc.ID)
	}
	slices.Sort(g.ids)

	for _, conn := range connections {
		if _, ok := g.locations[conn.From]; !ok {
			return nil, fmt.Errorf("build graph: connection from unknown location %q", conn.From)
		}
		if _, ok := g.locations[conn.To]; !ok {
			return nil, fmt.Errorf("build graph: connection to unknown location %q", conn.To)
		}
		if conn.Cost <= 0 {
			return nil, fmt.Errorf("build graph: connection %q -> %q has non-positive cost %.2f", conn.From, conn.To, conn.Cost)
		}
		g.adjacency[conn.From] = append(g.adjacency[conn.From], edge{to: conn.To, cost: conn.Cost})
	}

	// Sorted adjacency keeps traversal order independent of input order.
	for from := range g.adjacency {
		slices.SortFunc(g.adjacency[from], func(a, b edge) int {
			if a.to < b.to {
				return -1
			}
			if a.to > b.to {
				return 1
			}
			return 0
		})
	}

	return g, nil
}

// HasLocation reports whether the identifier names a known location.
func (g *Graph) HasLocation(id string) bool {
	_, ok := g.locations[id]
	return ok
}

// Location returns the stored location record for an identifier.
func (g *Graph) Location(id string) (domain.Location, bool) {
	loc, ok := g.locations[id]
	return loc, ok
}

// LocationIDs returns all location identifiers in ascending order.
func (g *Graph) LocationIDs() []string {
	return slices.Clone(g.ids)
}

// EdgeCost returns the cost of the direct edge from one location to
// another, taking the cheapest when parallel edges exist.
func (g *Graph) EdgeCost(from, to string) (float64, bool) {
	best := 0.0
	found := false
	for _, e := range g.adjacency[from] {
		if e.to == to && (!found || e.cost < best) {
			best = e.cost
			found = true
		}
	}
	return best, found
}
