package sim

import "delivery-fleet-sim/internal/domain"

// VehicleReport summarizes one vehicle's contribution to a run.
type VehicleReport struct {
	VehicleID string  `json:"vehicle_id"`
	Distance  float64 `json:"distance"`
	Delivered int     `json:"delivered"`
}

// Report is the per-run summary: the measurable outcome of a simulation,
// alongside the full event log.
type Report struct {
	Ticks         int             `json:"ticks"`
	Attempted     int             `json:"attempted"`
	Delivered     int             `json:"delivered"`
	Failed        int             `json:"failed"`
	Late          int             `json:"late"`
	TotalDistance float64         `json:"total_distance"`
	TimedOut      bool            `json:"timed_out"`
	Vehicles      []VehicleReport `json:"vehicles"`
}

// DeliveryRate returns the percentage of attempted packages delivered.
func (r *Report) DeliveryRate() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Delivered) / float64(r.Attempted) * 100
}

func (e *Engine) buildReport() *Report {
	report := &Report{
		Ticks:     e.state.Tick,
		Attempted: e.state.Queue.Count(),
		Delivered: e.state.Queue.CountByStatus(domain.PackageDelivered),
		Failed:    e.state.Queue.CountByStatus(domain.PackageFailed),
		Late:      e.late,
		TimedOut:  e.timedOut,
	}
	for _, v := range e.state.Fleet.Vehicles() {
		stat := e.stats[v.VehicleID]
		report.TotalDistance += stat.distance
		report.Vehicles = append(report.Vehicles, VehicleReport{
			VehicleID: v.VehicleID,
			Distance:  stat.distance,
			Delivered: stat.delivered,
		})
	}
	return report
}
