package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/ikalang/ika-backend/internal/dataset"
	"github.com/ikalang/ika-backend/internal/service/engine"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// snapshotInfo reports the dataset snapshot currently served.
type snapshotInfo interface {
	Info() engine.Info
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	engine  snapshotInfo
	db      dbPinger // nil when the lexicon is read from files
	version string
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(engine snapshotInfo, db dbPinger, version string) *HealthHandler {
	return &HealthHandler{engine: engine, db: db, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Dataset    *dataset.Fingerprint  `json:"dataset,omitempty"`
	Counts     *dataset.Counts       `json:"counts,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// BuildInfoResponse is the JSON response for /build-info.
type BuildInfoResponse struct {
	Version  string              `json:"version"`
	Dataset  dataset.Fingerprint `json:"dataset"`
	LoadedAt time.Time           `json:"loaded_at,omitzero"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 once a snapshot is loaded (and the DB
// answers, when configured), 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := h.engine.Info().Ready
	if ready && h.db != nil {
		ready = h.db.Ping(ctx) == nil
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: snapshot state, dataset fingerprint and
// counts, DB latency when configured, and the version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus)
	overallStatus := "ok"

	info := h.engine.Info()
	if info.Ready {
		components["dataset"] = CompStatus{Status: "ok"}
	} else {
		components["dataset"] = CompStatus{Status: "down"}
		overallStatus = "down"
	}

	if h.db != nil {
		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
			overallStatus = "down"
		} else {
			components["database"] = CompStatus{
				Status:  "ok",
				Latency: latency.String(),
			}
		}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	resp := HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	}
	if info.Ready {
		resp.Dataset = &info.Fingerprint
		resp.Counts = &info.Counts
	}
	writeJSON(w, status, resp)
}

// BuildInfo returns the version and the fingerprint of the served dataset.
func (h *HealthHandler) BuildInfo(w http.ResponseWriter, r *http.Request) {
	info := h.engine.Info()
	writeJSON(w, http.StatusOK, BuildInfoResponse{
		Version:  h.version,
		Dataset:  info.Fingerprint,
		LoadedAt: info.LoadedAt,
	})
}
