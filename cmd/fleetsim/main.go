package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"delivery-fleet-sim/internal/adapters/cache"
	"delivery-fleet-sim/internal/adapters/repositories"
	"delivery-fleet-sim/internal/config"
	"delivery-fleet-sim/internal/platform/db"
	"delivery-fleet-sim/internal/ports"
	"delivery-fleet-sim/internal/scenario"
	"delivery-fleet-sim/internal/sim"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the CLI composition root: it loads a scenario, runs the
// simulation to completion or tick budget, prints a summary, and
// optionally exports or archives the results.
//
// Exit code 0 covers normal completion, timeout included (a truncated
// run still yields a valid partial event log). Scenario load failures
// and internal invariant violations exit non-zero.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	maxTicks := flag.Int("max-ticks", 1000, "tick budget before the run is cut off")
	seed := flag.Int64("seed", 0, "seed for breakdown randomness")
	eventsPath := flag.String("events", "", "write the event log as JSON to this path")
	recordPath := flag.String("record", "", "write the full run record as JSON to this path")
	runID := flag.String("run-id", "", "run identifier for archiving (default: scenario file name)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: fleetsim [flags] <scenario.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	scenarioPath := flag.Arg(0)

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		log.Fatalf("scenario load failed: %v", err)
	}

	g, err := sc.BuildGraph()
	if err != nil {
		log.Fatalf("scenario graph failed: %v", err)
	}

	var paths ports.PathFinder = g
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		routeCache := cache.NewRedisRouteCache(client, filepath.Base(scenarioPath))
		paths = cache.NewCachedPathFinder(g, routeCache)
		log.Printf("route cache enabled addr=%s", addr)
	}

	state := sim.NewState(sc.BuildFleet(), sc.BuildPackages())
	engine := sim.NewEngine(state, sim.NewDispatcher(paths), sim.Config{
		MaxTicks:          *maxTicks,
		Seed:              *seed,
		Breakdowns:        sc.BuildBreakdowns(),
		BreakdownRate:     sc.BreakdownRate,
		RandomRepairTicks: sc.RandomRepairTicks,
	})

	report, err := engine.Run(context.Background())
	if err != nil {
		var timeout *sim.SimulationTimeoutError
		if !errors.As(err, &timeout) {
			log.Fatalf("simulation failed: %v", err)
		}
		log.Printf("simulation truncated: %v", err)
	}

	printSummary(report)

	id := *runID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(scenarioPath), filepath.Ext(scenarioPath))
	}
	record := ports.RunRecord{
		RunID:         id,
		Scenario:      scenarioPath,
		Seed:          *seed,
		Ticks:         report.Ticks,
		Delivered:     report.Delivered,
		Failed:        report.Failed,
		Late:          report.Late,
		TotalDistance: report.TotalDistance,
		TimedOut:      report.TimedOut,
		Events:        state.Log.Events(),
	}

	if *eventsPath != "" {
		if err := exportEvents(state, *eventsPath); err != nil {
			log.Fatalf("event export failed: %v", err)
		}
		log.Printf("events exported path=%s count=%d", *eventsPath, state.Log.Len())
	}

	if *recordPath != "" {
		if err := exportRecord(record, *recordPath); err != nil {
			log.Fatalf("record export failed: %v", err)
		}
		log.Printf("record exported path=%s", *recordPath)
	}

	if dbPath := config.Get("DB_PATH", ""); dbPath != "" {
		if err := archiveRun(record, dbPath); err != nil {
			log.Fatalf("archive failed: %v", err)
		}
		log.Printf("run archived db=%s run_id=%s", dbPath, id)
	}
}

func printSummary(report *sim.Report) {
	log.Printf(
		"run finished ticks=%d delivered=%d/%d failed=%d late=%d distance=%.2f timed_out=%t",
		report.Ticks, report.Delivered, report.Attempted,
		report.Failed, report.Late, report.TotalDistance, report.TimedOut,
	)
	for _, v := range report.Vehicles {
		log.Printf("vehicle=%s delivered=%d distance=%.2f", v.VehicleID, v.Delivered, v.Distance)
	}
}

func exportEvents(state *sim.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export events: create %q: %w", path, err)
	}
	defer f.Close()
	return state.Log.Export(f)
}

func archiveRun(record ports.RunRecord, dbPath string) error {
	pool, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	defer pool.Close()

	if err := repositories.InitSchema(pool); err != nil {
		return fmt.Errorf("archive run: %w", err)
	}

	repo := repositories.NewSQLRunRepository(pool)
	if err := repo.SaveRun(context.Background(), record); err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	return nil
}
