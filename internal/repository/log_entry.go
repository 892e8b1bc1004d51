package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

// ListLogs returns log entries matching filter, newest first.
func (r *Repository) ListLogs(ctx context.Context, filter model.LogFilter) ([]model.LogEntry, error) {
	query := `SELECT id, level, message, timestamp FROM app_logs`
	args := make([]any, 0, 2)

	if filter.Level != "" {
		args = append(args, filter.Level)
		query += ` WHERE level = $1`
	}

	args = append(args, filter.Limit)
	query += ` ORDER BY timestamp DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.LogEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan logs: %w", err)
	}

	return entries, nil
}

// CreateLog inserts a log entry and returns the stored row.
func (r *Repository) CreateLog(ctx context.Context, level, message string) (*model.LogEntry, error) {
	query := `
		INSERT INTO app_logs (level, message)
		VALUES ($1, $2)
		RETURNING id, level, message, timestamp
	`

	var entry model.LogEntry
	err := r.pool.QueryRow(ctx, query, level, message).Scan(
		&entry.ID,
		&entry.Level,
		&entry.Message,
		&entry.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	return &entry, nil
}
