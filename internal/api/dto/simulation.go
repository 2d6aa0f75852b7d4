package dto

import "encoding/json"

type SimulationRequest struct {
	// RunID names the run for archival; optional.
	RunID    string          `json:"run_id,omitempty"`
	MaxTicks int             `json:"max_ticks,omitempty"`
	Seed     int64           `json:"seed,omitempty"`
	Scenario json.RawMessage `json:"scenario"`
}

type EventRecord struct {
	Tick      int    `json:"tick"`
	Kind      string `json:"kind"`
	VehicleID string `json:"vehicle_id,omitempty"`
	PackageID string `json:"package_id,omitempty"`
}

type VehicleReportResponse struct {
	VehicleID string  `json:"vehicle_id"`
	Distance  float64 `json:"distance"`
	Delivered int     `json:"delivered"`
}

type ReportResponse struct {
	Ticks         int                     `json:"ticks"`
	Attempted     int                     `json:"attempted"`
	Delivered     int                     `json:"delivered"`
	Failed        int                     `json:"failed"`
	Late          int                     `json:"late"`
	TotalDistance float64                 `json:"total_distance"`
	TimedOut      bool                    `json:"timed_out"`
	Vehicles      []VehicleReportResponse `json:"vehicles"`
}

type SimulationResponse struct {
	RunID  string         `json:"run_id,omitempty"`
	Report ReportResponse `json:"report"`
	Events []EventRecord  `json:"events"`
}
