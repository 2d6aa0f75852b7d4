// Package scenario loads and validates simulation input files.
// All validation happens here, at the load boundary; the simulation core
// assumes well-formed data.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ScenarioError reports malformed or inconsistent scenario input.
// It is fatal and surfaced before the simulation starts.
type ScenarioError struct {
	Reason string
}

func (e *ScenarioError) Error() string { return "scenario: " + e.Reason }

func errorf(format string, args ...any) *ScenarioError {
	return &ScenarioError{Reason: fmt.Sprintf(format, args...)}
}

type ConnectionSpec struct {
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
	// Directed edges traverse one way only; the default is an
	// undirected road loaded as a pair of directed edges.
	Directed bool `json:"directed,omitempty"`
}

type LocationSpec struct {
	ID          string           `json:"id"`
	X           float64          `json:"x,omitempty"`
	Y           float64          `json:"y,omitempty"`
	Connections []ConnectionSpec `json:"connections"`
}

type VehicleSpec struct {
	ID            string  `json:"id"`
	StartLocation string  `json:"start_location"`
	Capacity      float64 `json:"capacity"`
}

type PackageSpec struct {
	ID          string  `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
	Deadline    int     `json:"deadline"`
}

type BreakdownSpec struct {
	Vehicle     string `json:"vehicle"`
	Tick        int    `json:"tick"`
	RepairTicks int    `json:"repair_ticks"`
}

// Scenario is the parsed, validated simulation input.
type Scenario struct {
	Locations  []LocationSpec  `json:"locations"`
	Vehicles   []VehicleSpec   `json:"vehicles"`
	Packages   []PackageSpec   `json:"packages"`
	Breakdowns []BreakdownSpec `json:"breakdowns,omitempty"`
	// BreakdownRate is the per-vehicle per-tick probability of a random
	// breakdown, driven by the engine's seeded RNG. Zero disables it.
	BreakdownRate     float64 `json:"breakdown_rate,omitempty"`
	RandomRepairTicks int     `json:"random_repair_ticks,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: read %q: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load scenario %q: %w", path, err)
	}
	return sc, nil
}

// Parse decodes scenario JSON and validates cross-references.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, errorf("invalid json: %v", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if len(sc.Locations) == 0 {
		return errorf("at least one location is required")
	}

	locations := make(map[string]struct{}, len(sc.Locations))
	for i, loc := range sc.Locations {
		id := strings.TrimSpace(loc.ID)
		if id == "" {
			return errorf("location at index %d has empty id", i)
		}
		if _, ok := locations[id]; ok {
			return errorf("duplicate location id %q", id)
		}
		locations[id] = struct{}{}
	}

	for _, loc := range sc.Locations {
		for _, conn := range loc.Connections {
			if _, ok := locations[conn.To]; !ok {
				return errorf("location %q connects to unknown location %q", loc.ID, conn.To)
			}
			if conn.Cost <= 0 {
				return errorf("connection %q -> %q has non-positive cost %.2f", loc.ID, conn.To, conn.Cost)
			}
		}
	}

	if len(sc.Vehicles) == 0 {
		return errorf("at least one vehicle is required")
	}
	vehicles := make(map[string]struct{}, len(sc.Vehicles))
	for i, v := range sc.Vehicles {
		id := strings.TrimSpace(v.ID)
		if id == "" {
			return errorf("vehicle at index %d has empty id", i)
		}
		if _, ok := vehicles[id]; ok {
			return errorf("duplicate vehicle id %q", id)
		}
		vehicles[id] = struct{}{}
		if _, ok := locations[v.StartLocation]; !ok {
			return errorf("vehicle %q starts at unknown location %q", v.ID, v.StartLocation)
		}
		if v.Capacity <= 0 {
			return errorf("vehicle %q has non-positive capacity %.2f", v.ID, v.Capacity)
		}
	}

	packages := make(map[string]struct{}, len(sc.Packages))
	for i, p := range sc.Packages {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return errorf("package at index %d has empty id", i)
		}
		if _, ok := packages[id]; ok {
			return errorf("duplicate package id %q", id)
		}
		packages[id] = struct{}{}
		if _, ok := locations[p.Origin]; !ok {
			return errorf("package %q originates at unknown location %q", p.ID, p.Origin)
		}
		if _, ok := locations[p.Destination]; !ok {
			return errorf("package %q is destined for unknown location %q", p.ID, p.Destination)
		}
		if p.Weight <= 0 {
			return errorf("package %q has non-positive weight %.2f", p.ID, p.Weight)
		}
		if p.Deadline < 0 {
			return errorf("package %q has negative deadline %d", p.ID, p.Deadline)
		}
	}

	for i, b := range sc.Breakdowns {
		if _, ok := vehicles[b.Vehicle]; !ok {
			return errorf("breakdown at index %d references unknown vehicle %q", i, b.Vehicle)
		}
		if b.Tick < 1 {
			return errorf("breakdown for vehicle %q has tick %d, must be >= 1", b.Vehicle, b.Tick)
		}
		if b.RepairTicks < 1 {
			return errorf("breakdown for vehicle %q has repair_ticks %d, must be >= 1", b.Vehicle, b.RepairTicks)
		}
	}

	if sc.BreakdownRate < 0 || sc.BreakdownRate >= 1 {
		return errorf("breakdown_rate %.3f out of range [0, 1)", sc.BreakdownRate)
	}
	if sc.BreakdownRate > 0 && sc.RandomRepairTicks < 1 {
		return errorf("random_repair_ticks must be >= 1 when breakdown_rate is set")
	}

	return nil
}
