package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/dbadmin"
)

var seedFlags struct {
	clear bool
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample users, logs and metrics",
	Long: `Insert sample data and print table statistics.

Sample users that already exist are skipped. Logs and metrics are appended
on every run; pass --clear to remove previous sample data first.
Users admin, testuser and demo are never cleared.`,
	RunE: runSeed,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete sample data without reseeding",
	RunE:  runClear,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print table statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(seedCmd, clearCmd, statsCmd)

	seedCmd.Flags().BoolVar(&seedFlags.clear, "clear", false, "delete existing sample data first")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	return withDB(cmd, func(ctx context.Context, db *sqlx.DB) error {
		out := cmd.OutOrStdout()
		seeder := dbadmin.NewSeeder(db)

		if seedFlags.clear {
			if err := seeder.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Existing data cleared")
		}

		res, err := seeder.Seed(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Seeded %d users, %d logs, %d metrics\n", res.Users, res.Logs, res.Metrics)

		stats, err := dbadmin.NewInspector(db).Stats(ctx)
		if err != nil {
			return err
		}
		printStats(cmd, stats)
		return nil
	})
}

func runClear(cmd *cobra.Command, _ []string) error {
	return withDB(cmd, func(ctx context.Context, db *sqlx.DB) error {
		if err := dbadmin.NewSeeder(db).Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sample data cleared")
		return nil
	})
}

func runStats(cmd *cobra.Command, _ []string) error {
	return withDB(cmd, func(ctx context.Context, db *sqlx.DB) error {
		stats, err := dbadmin.NewInspector(db).Stats(ctx)
		if err != nil {
			return err
		}
		printStats(cmd, stats)
		return nil
	})
}
