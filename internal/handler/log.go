package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/handler/dto"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/service"
)

// LogHandler handles HTTP requests for application log entries.
type LogHandler struct {
	svc    *service.LogService
	logger *slog.Logger
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(svc *service.LogService, logger *slog.Logger) *LogHandler {
	return &LogHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/logs?level=&limit=.
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := service.ParseLogLimit(query.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit", err.Error())
		return
	}

	filter := model.LogFilter{
		Level: query.Get("level"),
		Limit: limit,
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, "Invalid limit", err.Error())
			return
		}
		h.logger.Error("list_logs_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewLogListResponse(entries, filter))
}

// Create handles POST /api/logs.
func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.svc.Create(r.Context(), req.Level, req.Message)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "Level and message are required", err.Error())
		return
	default:
		h.logger.Error("create_log_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create log", err.Error())
		return
	}

	h.logger.Info("log_created", "log_id", entry.ID, "level", entry.Level)
	writeJSON(w, http.StatusCreated, dto.LogResponse{Success: true, Data: entry})
}
