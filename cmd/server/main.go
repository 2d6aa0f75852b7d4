package main

import (
	"log"
	"net/http"
	"time"

	"delivery-fleet-sim/internal/adapters/cache"
	"delivery-fleet-sim/internal/adapters/repositories"
	"delivery-fleet-sim/internal/api"
	"delivery-fleet-sim/internal/config"
	"delivery-fleet-sim/internal/platform/db"
	"delivery-fleet-sim/internal/ports"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the HTTP composition root. It wires the optional redis route
// cache and sqlite run archive behind ports and starts the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	var newRouteCache func(namespace string) ports.RouteCache
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		newRouteCache = func(namespace string) ports.RouteCache {
			return cache.NewRedisRouteCache(client, namespace)
		}
		log.Printf("route cache enabled addr=%s", addr)
	}

	var repo ports.RunRepository
	if dbPath := config.Get("DB_PATH", ""); dbPath != "" {
		pool, err := db.OpenSQLite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := repositories.InitSchema(pool); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewSQLRunRepository(pool)
		log.Printf("run archive enabled db=%s", dbPath)
	}

	router := api.NewRouter(newRouteCache, repo)

	// Write timeout leaves room for large scenarios running to the
	// default tick budget.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
