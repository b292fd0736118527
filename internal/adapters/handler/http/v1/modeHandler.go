package v1

import (
	"net/http"

	"pricewatch/internal/core/port"
)

type CollectorHandler struct {
	collector port.Collector
}

func NewCollectorHandler(collector port.Collector) *CollectorHandler {
	return &CollectorHandler{
		collector: collector,
	}
}

type CollectResponse struct {
	Rows    int    `json:"rows"`
	Message string `json:"message"`
}

type ModeResponse struct {
	Mode    string `json:"mode"`
	Message string `json:"message,omitempty"`
}

// RunCollection handles POST /collect
func (h *CollectorHandler) RunCollection(w http.ResponseWriter, r *http.Request) {
	rows, err := h.collector.Run(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "collection failed: "+err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, CollectResponse{
		Rows:    rows,
		Message: "collection pass completed",
	})
}

// SwitchToTestMode handles POST /mode/test
func (h *CollectorHandler) SwitchToTestMode(w http.ResponseWriter, r *http.Request) {
	if err := h.collector.SwitchToTestMode(); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "failed to switch to test mode: "+err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, ModeResponse{
		Mode:    h.collector.CurrentMode(),
		Message: "switched to test mode",
	})
}

// SwitchToLiveMode handles POST /mode/live
func (h *CollectorHandler) SwitchToLiveMode(w http.ResponseWriter, r *http.Request) {
	if err := h.collector.SwitchToLiveMode(); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "failed to switch to live mode: "+err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, ModeResponse{
		Mode:    h.collector.CurrentMode(),
		Message: "switched to live mode",
	})
}

// GetCurrentMode handles GET /mode/current
func (h *CollectorHandler) GetCurrentMode(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.collector.Status())
}
