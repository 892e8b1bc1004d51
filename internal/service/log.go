package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

// Log listing limits.
const (
	DefaultLogLimit = 50
	MaxLogLimit     = 1000
)

// LogStore is the persistence the log service needs.
type LogStore interface {
	ListLogs(ctx context.Context, filter model.LogFilter) ([]model.LogEntry, error)
	CreateLog(ctx context.Context, level, message string) (*model.LogEntry, error)
}

// LogService lists and records application log entries.
type LogService struct {
	store LogStore
}

// NewLogService creates a LogService.
func NewLogService(store LogStore) *LogService {
	return &LogService{store: store}
}

// ParseLogLimit parses the limit query value. Empty means DefaultLogLimit.
func ParseLogLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLogLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > MaxLogLimit {
		return 0, &ValidationError{
			Reason: fmt.Sprintf("limit must be an integer between 1 and %d", MaxLogLimit),
		}
	}
	return limit, nil
}

// List returns entries newest first, optionally restricted to one level.
// A zero Limit means DefaultLogLimit.
func (s *LogService) List(ctx context.Context, filter model.LogFilter) ([]model.LogEntry, error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultLogLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxLogLimit {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("limit must be an integer between 1 and %d", MaxLogLimit),
		}
	}

	entries, err := s.store.ListLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return entries, nil
}

// Create records a log entry. Level and message are both required.
func (s *LogService) Create(ctx context.Context, level, message string) (*model.LogEntry, error) {
	if err := requireFields("level", level, "message", message); err != nil {
		return nil, err
	}

	entry, err := s.store.CreateLog(ctx, strings.TrimSpace(level), message)
	if err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}
	return entry, nil
}
