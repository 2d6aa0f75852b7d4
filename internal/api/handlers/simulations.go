package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"delivery-fleet-sim/internal/adapters/cache"
	"delivery-fleet-sim/internal/api/dto"
	"delivery-fleet-sim/internal/ports"
	"delivery-fleet-sim/internal/scenario"
	"delivery-fleet-sim/internal/sim"
)

// SimulationHandler runs a scenario to completion (or tick budget) and
// returns the run report with the full event log. Each request gets its
// own simulation state, so concurrent requests do not interfere.
type SimulationHandler struct {
	// NewRouteCache builds a per-scenario route cache; nil disables
	// caching and path queries hit the graph directly.
	NewRouteCache func(namespace string) ports.RouteCache
	// Repo, when set, archives runs that carry a run_id.
	Repo ports.RunRepository
}

func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SimulationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Scenario) == 0 {
		writeError(w, r, http.StatusBadRequest, "scenario is required")
		return
	}
	if req.MaxTicks < 0 {
		writeError(w, r, http.StatusBadRequest, "max_ticks must not be negative")
		return
	}

	sc, err := scenario.Parse(req.Scenario)
	if err != nil {
		var scErr *scenario.ScenarioError
		if errors.As(err, &scErr) {
			writeError(w, r, http.StatusBadRequest, scErr.Error())
			return
		}
		log.Printf("parse scenario failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	g, err := sc.BuildGraph()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var paths ports.PathFinder = g
	if h.NewRouteCache != nil {
		if rc := h.NewRouteCache(scenarioNamespace(req.Scenario)); rc != nil {
			paths = cache.NewCachedPathFinder(g, rc)
		}
	}

	state := sim.NewState(sc.BuildFleet(), sc.BuildPackages())
	engine := sim.NewEngine(state, sim.NewDispatcher(paths), sim.Config{
		MaxTicks:          req.MaxTicks,
		Seed:              req.Seed,
		Breakdowns:        sc.BuildBreakdowns(),
		BreakdownRate:     sc.BreakdownRate,
		RandomRepairTicks: sc.RandomRepairTicks,
	})

	report, err := engine.Run(r.Context())
	if err != nil {
		var timeout *sim.SimulationTimeoutError
		if !errors.As(err, &timeout) {
			log.Printf("simulation failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		// Timeout is soft: the truncated run is still a valid result.
		log.Printf("simulation truncated: %v", err)
	}

	events := state.Log.Events()

	if h.Repo != nil && req.RunID != "" {
		record := ports.RunRecord{
			RunID:         req.RunID,
			Scenario:      scenarioNamespace(req.Scenario),
			Seed:          req.Seed,
			Ticks:         report.Ticks,
			Delivered:     report.Delivered,
			Failed:        report.Failed,
			Late:          report.Late,
			TotalDistance: report.TotalDistance,
			TimedOut:      report.TimedOut,
			Events:        events,
		}
		if err := h.Repo.SaveRun(r.Context(), record); err != nil {
			log.Printf("archive run failed run_id=%s err=%v", req.RunID, err)
		}
	}

	res := dto.SimulationResponse{
		RunID: req.RunID,
		Report: dto.ReportResponse{
			Ticks:         report.Ticks,
			Attempted:     report.Attempted,
			Delivered:     report.Delivered,
			Failed:        report.Failed,
			Late:          report.Late,
			TotalDistance: report.TotalDistance,
			TimedOut:      report.TimedOut,
		},
		Events: make([]dto.EventRecord, 0, len(events)),
	}
	for _, v := range report.Vehicles {
		res.Report.Vehicles = append(res.Report.Vehicles, dto.VehicleReportResponse{
			VehicleID: v.VehicleID,
			Distance:  v.Distance,
			Delivered: v.Delivered,
		})
	}
	for _, evt := range events {
		res.Events = append(res.Events, dto.EventRecord{
			Tick:      evt.Tick,
			Kind:      string(evt.Kind),
			VehicleID: evt.VehicleID,
			PackageID: evt.PackageID,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
