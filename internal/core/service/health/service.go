package health

import (
	"context"
	"time"

	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
)

type HealthService struct {
	ledger    port.Ledger
	cache     port.Cache
	collector port.Collector
}

func NewHealthService(ledger port.Ledger, cache port.Cache, collector port.Collector) port.HealthService {
	return &HealthService{
		ledger:    ledger,
		cache:     cache,
		collector: collector,
	}
}

func (s *HealthService) GetSystemHealth(ctx context.Context) (*domain.HealthStatus, error) {
	status := &domain.HealthStatus{
		Components: make(map[string]string),
		Timestamp:  time.Now().Unix(),
	}

	allHealthy := true

	// Check the ledger (PostgreSQL)
	if s.ledger != nil {
		if err := s.ledger.Ping(ctx); err != nil {
			status.Components["ledger"] = "unhealthy"
			allHealthy = false
		} else {
			status.Components["ledger"] = "healthy"
		}
	} else {
		status.Components["ledger"] = "unavailable"
		allHealthy = false
	}

	// Check Redis; the cache is optional, so absence only degrades
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			status.Components["cache"] = "unhealthy"
			allHealthy = false
		} else {
			status.Components["cache"] = "healthy"
		}
	} else {
		status.Components["cache"] = "unavailable"
		allHealthy = false
	}

	// Check the collector
	if s.collector != nil {
		status.Components["collector"] = "healthy"
	} else {
		status.Components["collector"] = "unavailable"
		allHealthy = false
	}

	if allHealthy {
		status.Status = "healthy"
		status.Message = "All systems operational"
	} else {
		// The ledger is the source of truth; without it nothing works
		if status.Components["ledger"] != "healthy" {
			status.Status = "unhealthy"
			status.Message = "Price ledger is unreachable"
		} else {
			status.Status = "degraded"
			status.Message = "Some components are not fully operational"
		}
	}

	return status, nil
}

func (s *HealthService) GetDetailedHealth(ctx context.Context) (*domain.HealthStatus, error) {
	status, err := s.GetSystemHealth(ctx)
	if err != nil {
		return nil, err
	}

	// Add detailed information about the collection pipeline
	if s.collector != nil {
		collectorStatus := s.collector.Status()

		status.Components["collector_mode"] = collectorStatus.CurrentMode
		switch {
		case collectorStatus.Running:
			status.Components["collector_run"] = "in_progress"
		case collectorStatus.LastRun == 0:
			status.Components["collector_run"] = "never_ran"
		case collectorStatus.LastRunRows == 0:
			status.Components["collector_run"] = "no_rows_collected"
		default:
			status.Components["collector_run"] = "ok"
		}
	}

	return status, nil
}
