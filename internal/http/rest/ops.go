// Package rest exposes the operational HTTP surface: liveness and metrics.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipfetch/clipfetch_bot/internal/telemetry"
)

// OpsHandler serves the endpoints a deployment probes, not anything
// user-facing. Chat traffic never flows through HTTP.
type OpsHandler struct {
	telemetry *telemetry.Telemetry
}

// NewOpsHandler creates a new operational handler.
func NewOpsHandler(t *telemetry.Telemetry) *OpsHandler {
	return &OpsHandler{telemetry: t}
}

func (h *OpsHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.HandleHealth)
	r.Method(http.MethodGet, "/metrics", h.telemetry.Handler())

	return r
}

func (h *OpsHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write([]byte("ok"))
}
