package domain

// HealthStatus represents system health information
type HealthStatus struct {
	Status     string            `json:"status"`     // "healthy", "degraded", "unhealthy"
	Components map[string]string `json:"components"` // Component name -> status
	Timestamp  int64             `json:"timestamp"`
	Message    string            `json:"message,omitempty"`
}

// CollectorStatus describes the collection pipeline's current state.
type CollectorStatus struct {
	CurrentMode string   `json:"current_mode"` // "live" or "test"
	Running     bool     `json:"running"`
	Sellers     []string `json:"sellers"`
	LastRun     int64    `json:"last_run,omitempty"` // unix seconds, 0 before the first run
	LastRunRows int      `json:"last_run_rows"`
	Timestamp   int64    `json:"timestamp"`
}
