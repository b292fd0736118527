package v1

import (
	"net/http"

	"pricewatch/internal/core/port"
)

type HealthHandler struct {
	healthService port.HealthService
}

func NewHealthHandler(healthService port.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// GetSystemHealth handles GET /health
func (h *HealthHandler) GetSystemHealth(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

// GetDetailedHealth handles GET /health/detailed
func (h *HealthHandler) GetDetailedHealth(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

func (h *HealthHandler) respond(w http.ResponseWriter, r *http.Request, detailed bool) {
	if h.healthService == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "health service not available")
		return
	}

	check := h.healthService.GetSystemHealth
	if detailed {
		check = h.healthService.GetDetailedHealth
	}
	healthStatus, err := check(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "failed to get system health: "+err.Error())
		return
	}

	// Map health state onto the HTTP status code
	statusCode := http.StatusOK
	switch healthStatus.Status {
	case "unhealthy":
		statusCode = http.StatusServiceUnavailable
	case "degraded":
		statusCode = http.StatusOK // degraded still serves traffic
	}

	writeJSONResponse(w, statusCode, healthStatus)
}
