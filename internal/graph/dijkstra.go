package graph

import (
	"container/heap"
	"context"
	"fmt"

	"delivery-fleet-sim/internal/ports"
)

type queueItem struct {
	id   string
	dist float64
}

// Min-heap on (distance, identifier). The identifier tie-break makes
// equal-cost expansions deterministic regardless of insertion order.
type priorityQueue []queueItem

func (q priorityQueue) Len() int { return len(q) }

func (q priorityQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].id < q[j].id
}

func (q priorityQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *priorityQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from one location to another and returns the
// full path with per-leg costs. Equal-cost alternatives resolve to the
// path through the lowest location identifier. Disconnected destinations
// yield a NoPathError.
//
// The context parameter satisfies ports.PathFinder; the in-memory search
// never blocks on I/O.
func (g *Graph) ShortestPath(_ context.Context, from, to string) (ports.PathResult, error) {
	if !g.HasLocation(from) {
		return ports.PathResult{}, fmt.Errorf("shortest path: unknown origin %q", from)
	}
	if !g.HasLocation(to) {
		return ports.PathResult{}, fmt.Errorf("shortest path: unknown destination %q", to)
	}

	if from == to {
		return ports.PathResult{Path: []string{from}}, nil
	}

	dist := map[string]float64{from: 0}
	prev := map[string]string{}
	settled := map[string]bool{}

	pq := &priorityQueue{{id: from, dist: 0}}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(queueItem)
		if settled[cur.id] {
			continue
		}
		settled[cur.id] = true

		if cur.id == to {
			break
		}

		for _, e := range g.adjacency[cur.id] {
			next := cur.dist + e.cost
			old, seen := dist[e.to]
			switch {
			case !seen || next < old:
				dist[e.to] = next
				prev[e.to] = cur.id
				heap.Push(pq, queueItem{id: e.to, dist: next})
			case next == old && cur.id < prev[e.to]:
				// Same cost through a lower predecessor: keep the path
				// deterministic by preferring the lower identifier.
				prev[e.to] = cur.id
			}
		}
	}

	if !settled[to] {
		return ports.PathResult{}, &NoPathError{From: from, To: to}
	}

	path := []string{to}
	for cur := to; cur != from; {
		p := prev[cur]
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	legCosts := make([]float64, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		cost, ok := g.EdgeCost(path[i], path[i+1])
		if !ok {
			return ports.PathResult{}, fmt.Errorf("shortest path: missing edge %q -> %q in reconstructed path", path[i], path[i+1])
		}
		legCosts = append(legCosts, cost)
	}

	return ports.PathResult{Path: path, LegCosts: legCosts, TotalCost: dist[to]}, nil
}
