package v1

import (
	"net/http"

	"pricewatch/internal/adapters/report"
	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
)

type PriceHandler struct {
	priceService port.PriceService
	reports      *report.Builder
}

func NewPriceHandler(priceService port.PriceService, reports *report.Builder) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
		reports:      reports,
	}
}

// GetLatestPrices handles GET /prices/latest/{product}
func (h *PriceHandler) GetLatestPrices(w http.ResponseWriter, r *http.Request) {
	product := r.PathValue("product")
	if product == "" {
		writeErrorResponse(w, http.StatusBadRequest, "missing product parameter")
		return
	}

	observations, err := h.priceService.LatestPrices(r.Context(), product)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "failed to get latest prices: "+err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, observations)
}

// GetHistory handles GET /prices/history/{product}
func (h *PriceHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	product := r.PathValue("product")
	if product == "" {
		writeErrorResponse(w, http.StatusBadRequest, "missing product parameter")
		return
	}

	observations, err := h.priceService.History(r.Context(), product)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "failed to get history: "+err.Error())
		return
	}
	if len(observations) == 0 {
		writeErrorResponse(w, http.StatusNotFound, "no price data found for product: "+product)
		return
	}

	writeJSONResponse(w, http.StatusOK, observations)
}

// GetRankedDays handles GET /ranks/{product}
func (h *PriceHandler) GetRankedDays(w http.ResponseWriter, r *http.Request) {
	product := r.PathValue("product")
	if product == "" {
		writeErrorResponse(w, http.StatusBadRequest, "missing product parameter")
		return
	}

	days, err := h.priceService.RankedDays(r.Context(), product)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "failed to compute ranks: "+err.Error())
		return
	}
	if len(days) == 0 {
		writeErrorResponse(w, http.StatusNotFound, "no price data found for product: "+product)
		return
	}

	writeJSONResponse(w, http.StatusOK, days)
}

// GetRankChanges handles GET /changes
func (h *PriceHandler) GetRankChanges(w http.ResponseWriter, r *http.Request) {
	changes, err := h.priceService.RankChanges(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "failed to detect rank changes: "+err.Error())
		return
	}

	// No change is a valid, common outcome; respond with an empty list
	if changes == nil {
		changes = []domain.RankChangeEvent{}
	}

	writeJSONResponse(w, http.StatusOK, changes)
}

// GetReport handles GET /report
func (h *PriceHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.reports.Build(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "failed to build report: "+err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, dataset)
}
