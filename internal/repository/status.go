package repository

import (
	"context"
	"fmt"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

// Status reports the database identity and table row counts in one round trip.
func (r *Repository) Status(ctx context.Context) (*model.DBStatus, error) {
	query := `
		SELECT
			current_database(),
			current_user,
			version(),
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM app_logs)
	`

	var status model.DBStatus
	err := r.pool.QueryRow(ctx, query).Scan(
		&status.Database,
		&status.User,
		&status.Version,
		&status.UserCount,
		&status.LogCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query database status: %w", err)
	}

	return &status, nil
}
