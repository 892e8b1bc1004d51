package dbadmin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// RequiredTables are the tables the API expects after migration.
var RequiredTables = []string{"users", "app_logs", "system_metrics"}

// LevelCount is the number of log entries at one level.
type LevelCount struct {
	Level string `db:"level"`
	Count int64  `db:"count"`
}

// Stats summarizes table contents.
type Stats struct {
	Users   int64 `db:"users"`
	Logs    int64 `db:"logs"`
	Metrics int64 `db:"metrics"`
	Levels  []LevelCount
}

// Inspector reads schema and row statistics.
type Inspector struct {
	db *sqlx.DB
}

// NewInspector creates an Inspector.
func NewInspector(db *sqlx.DB) *Inspector {
	return &Inspector{db: db}
}

// MissingTables returns the required tables absent from the public schema,
// in RequiredTables order.
func (i *Inspector) MissingTables(ctx context.Context) ([]string, error) {
	var present []string
	err := i.db.SelectContext(ctx, &present, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = ANY($1)`,
		pq.Array(RequiredTables),
	)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	seen := make(map[string]bool, len(present))
	for _, name := range present {
		seen[name] = true
	}

	var missing []string
	for _, name := range RequiredTables {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// Stats counts rows per table and log entries per level, busiest level first.
func (i *Inspector) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := i.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM app_logs) AS logs,
			(SELECT COUNT(*) FROM system_metrics) AS metrics`)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	err = i.db.SelectContext(ctx, &stats.Levels, `
		SELECT level, COUNT(*) AS count
		FROM app_logs
		GROUP BY level
		ORDER BY count DESC, level`)
	if err != nil {
		return nil, fmt.Errorf("count log levels: %w", err)
	}

	return &stats, nil
}
