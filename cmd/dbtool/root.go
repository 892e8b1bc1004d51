package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/config"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/dbadmin"
)

const commandTimeout = 2 * time.Minute

var (
	// Global flags
	envFile     string
	databaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "Database tooling for the demo API",
	Long: `dbtool applies schema migrations, seeds sample data, and bootstraps
environment files for the demo API.

The database connection comes from the same DB_* variables the API reads,
loaded from --env-file when present, or from --database-url.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "postgres URL (overrides DB_* settings)")
}

// resolveDatabaseURL returns --database-url or the URL built from config.
func resolveDatabaseURL() (string, error) {
	if databaseURL != "" {
		return databaseURL, nil
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		return "", err
	}
	return cfg.DatabaseURL(), nil
}

// withDB opens the database for the duration of fn.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *sqlx.DB) error) error {
	url, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	db, err := dbadmin.Open(ctx, url)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, db)
}

// printStats writes table counts and the per-level log breakdown.
func printStats(cmd *cobra.Command, stats *dbadmin.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database statistics:")
	fmt.Fprintf(out, "  users:   %d\n", stats.Users)
	fmt.Fprintf(out, "  logs:    %d\n", stats.Logs)
	fmt.Fprintf(out, "  metrics: %d\n", stats.Metrics)

	if len(stats.Levels) == 0 {
		return
	}
	fmt.Fprintln(out, "Logs by level:")
	for _, lc := range stats.Levels {
		fmt.Fprintf(out, "  %-6s %d\n", lc.Level, lc.Count)
	}
}
