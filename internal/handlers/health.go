package handlers

import (
	"net/http"
	"runtime"

	"movie-catalog/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusScanning = "scanning"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Scanning bool   `json:"scanning"`

	// Catalog and scan progress
	CatalogSize        int   `json:"catalogSize"`
	CandidatesFound    int64 `json:"candidatesFound"`
	Resolved           int64 `json:"resolved"`
	NotFound           int64 `json:"notFound"`
	DirectoriesSkipped int64 `json:"directoriesSkipped"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	Persistence bool `json:"persistence"`
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	progress := h.coordinator.Progress()

	response := HealthResponse{
		Status:             statusHealthy,
		Version:            startup.Version,
		Scanning:           progress.Scanning,
		CatalogSize:        h.catalog.Size(),
		CandidatesFound:    progress.CandidatesFound,
		Resolved:           progress.Resolved,
		NotFound:           progress.NotFound,
		DirectoriesSkipped: progress.DirectoriesSkipped,
		GoVersion:          runtime.Version(),
		NumCPU:             runtime.NumCPU(),
		NumGoroutine:       runtime.NumGoroutine(),
		Persistence:        h.store != nil,
	}

	if progress.Scanning {
		response.Status = statusScanning
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 once the catalog is serving. The catalog is
// usable from the moment the server starts, so a running scan does not
// make the service unready.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, map[string]string{
		"status": "ready",
	})
}
