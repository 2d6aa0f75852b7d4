package sim

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"delivery-fleet-sim/internal/domain"
)

// SimulationTimeoutError reports that the tick budget ran out before the
// simulation drained. It is soft: the partial event log and report
// remain valid.
type SimulationTimeoutError struct {
	MaxTicks int
}

func (e *SimulationTimeoutError) Error() string {
	return fmt.Sprintf("simulation exceeded tick budget of %d", e.MaxTicks)
}

// Config holds engine tunables. Zero values fall back to defaults.
type Config struct {
	// MaxTicks is the tick budget before the run is cut off.
	MaxTicks int
	// Seed drives all engine randomness. Runs with the same scenario
	// and seed produce byte-identical event logs.
	Seed int64
	// CostPerTick is how much traversal cost a vehicle consumes per tick.
	CostPerTick float64
	// Breakdowns are scenario-scripted failures.
	Breakdowns []domain.Breakdown
	// BreakdownRate is the per-vehicle per-tick random failure
	// probability; zero disables random breakdowns.
	BreakdownRate     float64
	RandomRepairTicks int
}

const (
	defaultMaxTicks    = 1000
	defaultCostPerTick = 1.0
)

type vehicleStat struct {
	distance  float64
	delivered int
}

// Engine advances the simulation one tick at a time: dispatch, movement,
// delivery, breakdown and repair. It is the only component that mutates
// vehicle positions.
type Engine struct {
	state      *State
	dispatcher *Dispatcher
	cfg        Config
	rng        *rand.Rand
	scripted   map[int][]domain.Breakdown
	stats      map[string]*vehicleStat
	late       int
	timedOut   bool
}

func NewEngine(st *State, dispatcher *Dispatcher, cfg Config) *Engine {
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = defaultMaxTicks
	}
	if cfg.CostPerTick <= 0 {
		cfg.CostPerTick = defaultCostPerTick
	}

	scripted := make(map[int][]domain.Breakdown)
	for _, b := range cfg.Breakdowns {
		scripted[b.Tick] = append(scripted[b.Tick], b)
	}
	for tick := range scripted {
		slices.SortFunc(scripted[tick], func(a, b domain.Breakdown) int {
			if a.VehicleID < b.VehicleID {
				return -1
			}
			if a.VehicleID > b.VehicleID {
				return 1
			}
			return 0
		})
	}

	stats := make(map[string]*vehicleStat)
	for _, v := range st.Fleet.Vehicles() {
		stats[v.VehicleID] = &vehicleStat{}
	}

	return &Engine{
		state:      st,
		dispatcher: dispatcher,
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		scripted:   scripted,
		stats:      stats,
	}
}

// Run advances the simulation until the delivery queue drains and the
// fleet comes to rest, or until the tick budget runs out. On timeout the
// report still covers everything that happened; the error identifies the
// truncation.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	for {
		done, err := e.Step(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if e.state.Tick >= e.cfg.MaxTicks {
			e.timedOut = true
			return e.buildReport(), &SimulationTimeoutError{MaxTicks: e.cfg.MaxTicks}
		}
	}
	return e.buildReport(), nil
}

// Step executes one tick and reports whether the simulation finished.
func (e *Engine) Step(ctx context.Context) (bool, error) {
	e.state.Tick++

	e.applyRepairs()
	e.applyBreakdowns()

	if _, err := e.dispatcher.Dispatch(ctx, e.state); err != nil {
		return false, fmt.Errorf("engine tick %d: %w", e.state.Tick, err)
	}

	if err := e.moveFleet(); err != nil {
		return false, fmt.Errorf("engine tick %d: %w", e.state.Tick, err)
	}

	return e.finished(), nil
}

// applyRepairs runs before dispatch so a vehicle repaired this tick can
// take new work immediately.
func (e *Engine) applyRepairs() {
	for _, v := range e.state.Fleet.Vehicles() {
		if !v.Broken() || e.state.Tick < v.RepairAtTick {
			continue
		}
		v.RepairAtTick = 0
		if v.Route.Empty() && len(v.Load) == 0 {
			v.Status = domain.VehicleIdle
		} else {
			v.Status = domain.VehicleEnRoute
		}
		e.state.Log.Append(domain.Event{Tick: e.state.Tick, Kind: domain.EventRepaired, VehicleID: v.VehicleID})
	}
}

func (e *Engine) applyBreakdowns() {
	for _, b := range e.scripted[e.state.Tick] {
		if v, ok := e.state.Fleet.Get(b.VehicleID); ok && !v.Broken() {
			e.breakVehicle(v, b.RepairTicks)
		}
	}

	if e.cfg.BreakdownRate <= 0 {
		return
	}
	// Identifier order keeps RNG consumption deterministic across runs.
	for _, v := range e.state.Fleet.Vehicles() {
		if v.Broken() {
			continue
		}
		if e.rng.Float64() < e.cfg.BreakdownRate {
			e.breakVehicle(v, e.cfg.RandomRepairTicks)
		}
	}
}

func (e *Engine) breakVehicle(v *domain.Vehicle, repairTicks int) {
	v.Status = domain.VehicleBrokenDown
	v.RepairAtTick = e.state.Tick + repairTicks
	e.state.Log.Append(domain.Event{Tick: e.state.Tick, Kind: domain.EventBrokenDown, VehicleID: v.VehicleID})
}

func (e *Engine) moveFleet() error {
	for _, v := range e.state.Fleet.Vehicles() {
		if v.Status != domain.VehicleEnRoute {
			continue
		}

		// Zero-distance pickups and deliveries at the current position
		// happen before movement, covering packages assigned where the
		// vehicle already stands.
		if err := e.processStop(v, v.Location); err != nil {
			return err
		}

		before := v.Route.TotalCost() - v.Progress
		arrivals := e.state.Fleet.Advance(v, e.cfg.CostPerTick)
		after := v.Route.TotalCost() - v.Progress
		e.stats[v.VehicleID].distance += before - after

		for _, loc := range arrivals {
			if err := e.processStop(v, loc); err != nil {
				return err
			}
		}

		if v.Route.Empty() && len(v.Load) == 0 {
			v.Status = domain.VehicleIdle
			v.Progress = 0
		} else if v.Status == domain.VehicleDelivering {
			v.Status = domain.VehicleEnRoute
		}
	}
	return nil
}

// processStop handles everything that happens when a vehicle stands at a
// location: pick up assigned packages originating here, then deliver
// in-transit packages destined here. Pickup runs first so a package
// whose origin and destination coincide completes in one stop.
func (e *Engine) processStop(v *domain.Vehicle, loc string) error {
	for _, pkg := range v.Load {
		if pkg.Status == domain.PackageAssigned && pkg.Origin == loc {
			if err := e.state.Queue.Mark(pkg, domain.PackageInTransit); err != nil {
				return err
			}
		}
	}

	for _, pkg := range slices.Clone(v.Load) {
		if pkg.Status != domain.PackageInTransit || pkg.Destination != loc {
			continue
		}
		v.Status = domain.VehicleDelivering
		if err := e.state.Queue.Mark(pkg, domain.PackageDelivered); err != nil {
			return err
		}
		tick := e.state.Tick
		pkg.DeliveredAt = &tick
		if tick > pkg.Deadline {
			e.late++
		}
		v.UnloadPackage(pkg.PackageID)
		e.stats[v.VehicleID].delivered++
		e.state.Log.Append(domain.Event{
			Tick:      tick,
			Kind:      domain.EventDelivered,
			VehicleID: v.VehicleID,
			PackageID: pkg.PackageID,
		})
	}
	return nil
}

// finished reports whether the queue has drained and the fleet is at
// rest. Broken-down vehicles without cargo do not block completion.
func (e *Engine) finished() bool {
	if e.state.Queue.OpenCount() > 0 {
		return false
	}
	for _, v := range e.state.Fleet.Vehicles() {
		if v.Status == domain.VehicleEnRoute || v.Status == domain.VehicleDelivering {
			return false
		}
	}
	return true
}
