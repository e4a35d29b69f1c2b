package handlers

import (
	"context"
	"errors"
	"net/http"

	"movie-catalog/internal/logging"
	"movie-catalog/internal/scan"
)

// TriggerScan starts a background scan of the configured media root.
// StartScan claims the scan slot before returning, so concurrent triggers
// get a 409 rather than two 202s for one scan.
func (h *Handlers) TriggerScan(w http.ResponseWriter, _ *http.Request) {
	// Detached from the request context: the scan outlives the trigger.
	err := h.coordinator.StartScan(context.Background(), h.mediaDir)
	if err != nil {
		if errors.Is(err, scan.ErrScanInProgress) {
			writeJSONError(w, "a scan is already in progress", http.StatusConflict)
			return
		}
		logging.Error("failed to start scan: %v", err)
		writeJSONError(w, "failed to start scan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]string{
		"status":   "started",
		"mediaDir": h.mediaDir,
	})
}

// ScanProgress returns the coordinator's counters
func (h *Handlers) ScanProgress(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.coordinator.Progress())
}
