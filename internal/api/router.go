package api

import (
	"net/http"

	"delivery-fleet-sim/internal/api/handlers"
	"delivery-fleet-sim/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(newRouteCache func(namespace string) ports.RouteCache, repo ports.RunRepository) http.Handler {
	mux := http.NewServeMux()

	simHandler := &handlers.SimulationHandler{
		NewRouteCache: newRouteCache,
		Repo:          repo,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/simulations", simHandler.Simulate)

	return loggingMiddleware(mux)
}
