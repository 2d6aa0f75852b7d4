package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"delivery-fleet-sim/internal/adapters/repositories"
	"delivery-fleet-sim/internal/platform/db"
	"delivery-fleet-sim/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool imports exported run records into the postgres archive, so
// local runs can be collected centrally for grading or comparison.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dbtool <record.json> [record.json ...]")
		os.Exit(2)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := db.OpenPostgres(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing archive schema...")
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	repo := repositories.NewSQLRunRepository(pool)
	for _, path := range flag.Args() {
		record, err := readRecord(path)
		if err != nil {
			log.Fatalf("read record %q: %v", path, err)
		}
		if err := repo.SaveRun(context.Background(), record); err != nil {
			log.Fatalf("archive record %q: %v", path, err)
		}
		log.Printf("archived run_id=%s events=%d", record.RunID, len(record.Events))
	}
}

func readRecord(path string) (ports.RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ports.RunRecord{}, fmt.Errorf("read %q: %w", path, err)
	}

	var record ports.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return ports.RunRecord{}, fmt.Errorf("parse %q: %w", path, err)
	}
	if strings.TrimSpace(record.RunID) == "" {
		return ports.RunRecord{}, fmt.Errorf("record %q has empty run_id", path)
	}
	return record, nil
}
