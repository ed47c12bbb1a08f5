package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/netroncoso/presupuestador/internal/scheduler"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// sweepReporter exposes the latest auto-release outcome.
type sweepReporter interface {
	LastSweep() scheduler.Sweep
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	sweeps  sweepReporter
	version string
	// staleAfter marks the sweep as stale when its last run is older.
	staleAfter time.Duration
}

// NewHealthHandler creates a HealthHandler. sweeps may be nil when the
// process does not run the release scheduler.
func NewHealthHandler(db dbPinger, sweeps sweepReporter, version string, releaseInterval time.Duration) *HealthHandler {
	return &HealthHandler{
		db:         db,
		sweeps:     sweeps,
		version:    version,
		staleAfter: 3 * releaseInterval,
	}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// ComponentStatus is the status of an individual component.
type ComponentStatus struct {
	Status   string     `json:"status"`
	Latency  string     `json:"latency,omitempty"`
	LastRun  *time.Time `json:"last_run,omitempty"`
	Released *int64     `json:"released,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
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

// Health is the full health check: database latency, the release sweep and
// the build version. A database outage returns 503; a failing or stale sweep
// degrades the status but keeps 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]ComponentStatus)
	overall := "ok"

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		components["database"] = ComponentStatus{Status: "down"}
		overall = "down"
	} else {
		components["database"] = ComponentStatus{
			Status:  "ok",
			Latency: latency.String(),
		}
	}

	if h.sweeps != nil {
		sweep := h.sweepStatus(time.Now())
		components["release_sweep"] = sweep
		if sweep.Status != "ok" && sweep.Status != "pending" && overall == "ok" {
			overall = "degraded"
		}
	}

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) sweepStatus(now time.Time) ComponentStatus {
	last := h.sweeps.LastSweep()
	if last.At.IsZero() {
		return ComponentStatus{Status: "pending"}
	}

	cs := ComponentStatus{Status: "ok", LastRun: &last.At}
	switch {
	case last.Err != nil:
		cs.Status = "failing"
		cs.Error = last.Err.Error()
	case h.staleAfter > 0 && now.Sub(last.At) > h.staleAfter:
		cs.Status = "stale"
	default:
		cs.Released = &last.Released
	}
	return cs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
