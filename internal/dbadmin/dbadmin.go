// Package dbadmin holds the offline database tooling: schema migration,
// sample data seeding, table inspection and .env bootstrap.
package dbadmin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for sqlx
)

// Open connects to Postgres through lib/pq and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	db.SetMaxOpenConns(5)
	return db, nil
}
