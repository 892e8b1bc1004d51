package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/handler/dto"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

// infoLines is how many lines of the INFO reply are returned.
const infoLines = 10

// statusTimeout bounds a single status probe.
const statusTimeout = 5 * time.Second

// DBStatusReader reports database identity and row counts.
type DBStatusReader interface {
	Status(ctx context.Context) (*model.DBStatus, error)
}

// CacheInspector reports cache liveness and server info.
type CacheInspector interface {
	PingReply(ctx context.Context) (string, error)
	Info(ctx context.Context, maxLines int) ([]string, error)
}

// StatusHandler serves the dependency status endpoints.
type StatusHandler struct {
	db     DBStatusReader
	cache  CacheInspector
	logger *slog.Logger
}

// NewStatusHandler creates a new StatusHandler. Pass a nil cache when no
// cache is configured.
func NewStatusHandler(db DBStatusReader, cache CacheInspector, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Database handles GET /api/db/status.
func (h *StatusHandler) Database(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), statusTimeout)
	defer cancel()

	status, err := h.db.Status(ctx)
	if err != nil {
		h.logger.Error("db_status_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.DBStatusResponse{
			Status: dto.StatusDisconnected,
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.DBStatusResponse{
		Success: true,
		Status:  dto.StatusConnected,
		Data:    status,
	})
}

// Cache handles GET /api/redis/status and /api/cache/status.
func (h *StatusHandler) Cache(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeJSON(w, http.StatusOK, dto.CacheStatusResponse{
			Status: dto.StatusNotConfigured,
			Error:  "Redis client not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), statusTimeout)
	defer cancel()

	info, err := h.cache.Info(ctx, infoLines)
	if err == nil {
		var pong string
		if pong, err = h.cache.PingReply(ctx); err == nil {
			writeJSON(w, http.StatusOK, dto.CacheStatusResponse{
				Success: true,
				Status:  dto.StatusConnected,
				Ping:    pong,
				Info:    info,
			})
			return
		}
	}

	h.logger.Error("cache_status_failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, dto.CacheStatusResponse{
		Status: dto.StatusDisconnected,
		Error:  err.Error(),
	})
}
