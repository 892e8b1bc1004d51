package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/handler/dto"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("list_users_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve users", err.Error())
		return
	}

	h.logger.Info("users_listed", "count", len(users))
	writeJSON(w, http.StatusOK, dto.NewUserListResponse(users, false))
}

// ListCached handles GET /api/users/cached. Without a cache it redirects to
// the uncached listing.
func (h *UserHandler) ListCached(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.ListCached(r.Context())
	if errors.Is(err, service.ErrCacheNotConfigured) {
		http.Redirect(w, r, "/api/users", http.StatusFound)
		return
	}
	if err != nil {
		h.logger.Error("list_cached_users_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve cached users", err.Error())
		return
	}

	h.logger.Info("users_listed", "count", len(listing.Users), "cached", listing.Cached)
	writeJSON(w, http.StatusOK, dto.NewUserListResponse(listing.Users, listing.Cached))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Create(r.Context(), req.Username, req.Email)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "Username and email are required", err.Error())
		return
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, "User already exists", "Username or email already exists")
		return
	default:
		h.logger.Error("create_user_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	h.logger.Info("user_created", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, dto.UserResponse{Success: true, Data: user})
}
