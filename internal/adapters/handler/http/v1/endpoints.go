package v1

import (
	"net/http"
)

// SetRoutes sets up all API routes
func SetRoutes(router *http.ServeMux, priceHandler *PriceHandler, collectorHandler *CollectorHandler, healthHandler *HealthHandler) {
	setPriceRoutes(priceHandler, router)
	setCollectorRoutes(collectorHandler, router)
	setHealthRoutes(healthHandler, router)
}

// setPriceRoutes sets up the ledger and rank query endpoints
func setPriceRoutes(handler *PriceHandler, router *http.ServeMux) {
	router.HandleFunc("GET /prices/latest/{product}", handler.GetLatestPrices)
	router.HandleFunc("GET /prices/history/{product}", handler.GetHistory)

	router.HandleFunc("GET /ranks/{product}", handler.GetRankedDays)
	router.HandleFunc("GET /changes", handler.GetRankChanges)
	router.HandleFunc("GET /report", handler.GetReport)
}

// setCollectorRoutes sets up collection and mode switching endpoints
func setCollectorRoutes(handler *CollectorHandler, router *http.ServeMux) {
	router.HandleFunc("POST /collect", handler.RunCollection)

	router.HandleFunc("POST /mode/test", handler.SwitchToTestMode)
	router.HandleFunc("POST /mode/live", handler.SwitchToLiveMode)
	router.HandleFunc("GET /mode/current", handler.GetCurrentMode)
}

// setHealthRoutes sets up system health endpoints
func setHealthRoutes(handler *HealthHandler, router *http.ServeMux) {
	router.HandleFunc("GET /health", handler.GetSystemHealth)
	router.HandleFunc("GET /health/detailed", handler.GetDetailedHealth)
}
