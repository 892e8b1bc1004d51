package dbadmin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

// ProtectedUsers survive Clear.
var ProtectedUsers = []string{"admin", "testuser", "demo"}

// SampleUsers are inserted by Seed. Existing usernames are skipped.
var SampleUsers = []model.User{
	{Username: "alice", Email: "alice@example.com"},
	{Username: "bob", Email: "bob@example.com"},
	{Username: "charlie", Email: "charlie@example.com"},
	{Username: "diana", Email: "diana@example.com"},
	{Username: "eve", Email: "eve@example.com"},
}

// SampleLogs are appended by every Seed.
var SampleLogs = []model.LogEntry{
	{Level: "info", Message: "Application started successfully"},
	{Level: "info", Message: "Database connection established"},
	{Level: "info", Message: "Redis connection established"},
	{Level: "warn", Message: "High memory usage detected"},
	{Level: "error", Message: "Failed to connect to external API"},
	{Level: "debug", Message: "User authentication successful"},
	{Level: "info", Message: "New user registered"},
	{Level: "warn", Message: "Rate limit exceeded for user"},
	{Level: "error", Message: "Database query timeout"},
	{Level: "info", Message: "Cache miss for key: user:123"},
}

// SampleMetrics are appended by every Seed.
var SampleMetrics = []model.Metric{
	{Name: "cpu_usage", Value: 45.5, Unit: "percent"},
	{Name: "memory_usage", Value: 67.2, Unit: "percent"},
	{Name: "disk_usage", Value: 23.8, Unit: "percent"},
	{Name: "response_time", Value: 125.5, Unit: "ms"},
	{Name: "request_count", Value: 1500, Unit: "count"},
}

const (
	insertUserSQL   = `INSERT INTO users (username, email) VALUES (:username, :email) ON CONFLICT (username) DO NOTHING`
	insertLogSQL    = `INSERT INTO app_logs (level, message) VALUES (:level, :message)`
	insertMetricSQL = `INSERT INTO system_metrics (metric_name, metric_value, metric_unit) VALUES (:metric_name, :metric_value, :metric_unit)`
)

// SeedResult counts rows inserted by Seed.
type SeedResult struct {
	Users   int64
	Logs    int64
	Metrics int64
}

// Seeder writes sample data.
type Seeder struct {
	db *sqlx.DB
}

// NewSeeder creates a Seeder.
func NewSeeder(db *sqlx.DB) *Seeder {
	return &Seeder{db: db}
}

// Seed inserts the sample users, logs and metrics in one transaction.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if res.Users, err = namedExecEach(ctx, tx, insertUserSQL, SampleUsers); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if res.Logs, err = namedExecEach(ctx, tx, insertLogSQL, SampleLogs); err != nil {
			return fmt.Errorf("seed logs: %w", err)
		}
		if res.Metrics, err = namedExecEach(ctx, tx, insertMetricSQL, SampleMetrics); err != nil {
			return fmt.Errorf("seed metrics: %w", err)
		}
		return nil
	})

	return res, err
}

// Clear deletes all metrics and logs, and every user not in ProtectedUsers.
func (s *Seeder) Clear(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM system_metrics`); err != nil {
			return fmt.Errorf("clear metrics: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM app_logs`); err != nil {
			return fmt.Errorf("clear logs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username <> ALL($1)`, pq.Array(ProtectedUsers)); err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}

func (s *Seeder) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// namedExecEach runs query once per row and sums the affected row counts.
func namedExecEach[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T) (int64, error) {
	var total int64
	for _, row := range rows {
		res, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
