package main

import (
	"encoding/json"
	"fmt"
	"os"

	"delivery-fleet-sim/internal/ports"
)

func exportRecord(record ports.RunRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export record: create %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("export record: encode: %w", err)
	}
	return nil
}
