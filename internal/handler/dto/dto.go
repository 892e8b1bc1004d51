// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

// ErrorResponse is the failure envelope for every error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Success bool        `json:"success"`
	Data    *model.User `json:"data"`
}

// UserListResponse wraps a user listing.
type UserListResponse struct {
	Success bool         `json:"success"`
	Data    []model.User `json:"data"`
	Count   int          `json:"count"`
	Cached  bool         `json:"cached"`
}

// NewUserListResponse builds a listing response; a nil slice renders as [].
func NewUserListResponse(users []model.User, cached bool) UserListResponse {
	if users == nil {
		users = []model.User{}
	}
	return UserListResponse{
		Success: true,
		Data:    users,
		Count:   len(users),
		Cached:  cached,
	}
}

// CreateLogRequest is the body of POST /api/logs.
type CreateLogRequest struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// LogResponse wraps a single log entry.
type LogResponse struct {
	Success bool            `json:"success"`
	Data    *model.LogEntry `json:"data"`
}

// LogFilters echoes the filters applied to a log listing.
type LogFilters struct {
	Level string `json:"level,omitempty"`
	Limit int    `json:"limit"`
}

// LogListResponse wraps a log listing.
type LogListResponse struct {
	Success bool             `json:"success"`
	Data    []model.LogEntry `json:"data"`
	Count   int              `json:"count"`
	Filters LogFilters       `json:"filters"`
}

// NewLogListResponse builds a listing response; a nil slice renders as [].
func NewLogListResponse(entries []model.LogEntry, filter model.LogFilter) LogListResponse {
	if entries == nil {
		entries = []model.LogEntry{}
	}
	return LogListResponse{
		Success: true,
		Data:    entries,
		Count:   len(entries),
		Filters: LogFilters{Level: filter.Level, Limit: filter.Limit},
	}
}

// Dependency connection states reported by the status endpoints.
const (
	StatusConnected     = "connected"
	StatusDisconnected  = "disconnected"
	StatusNotConfigured = "not_configured"
)

// DBStatusResponse is the body of GET /api/db/status.
type DBStatusResponse struct {
	Success bool            `json:"success"`
	Status  string          `json:"status"`
	Data    *model.DBStatus `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CacheStatusResponse is the body of GET /api/redis/status.
type CacheStatusResponse struct {
	Success bool     `json:"success"`
	Status  string   `json:"status"`
	Ping    string   `json:"ping,omitempty"`
	Info    []string `json:"info,omitempty"`
	Error   string   `json:"error,omitempty"`
}
