package rest

import (
	"log/slog"
	"net/http"

	"github.com/netroncoso/presupuestador/internal/transport/middleware"
)

// NewRouter mounts the operational endpoints behind the request id, access
// log and panic recovery middleware.
func NewRouter(log *slog.Logger, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(log, "/live", "/ready"),
		middleware.Recovery(log),
	)(mux)
}
