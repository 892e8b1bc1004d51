package handler

import (
	"log/slog"
	"net/http"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/health"
)

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	aggregator *health.Aggregator
	logger     *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(aggregator *health.Aggregator, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// Healthz is a liveness probe. It never touches dependencies.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Health probes every dependency and reports memory usage. It answers 503
// when any configured dependency is unreachable.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.aggregator.Check(r.Context())

	if !report.Healthy() {
		h.logger.Error("health_check_failed", "checks", report.Checks)
		writeJSON(w, http.StatusServiceUnavailable, report)
		return
	}

	h.logger.Debug("health_check_passed", "uptime", report.Uptime)
	writeJSON(w, http.StatusOK, report)
}
