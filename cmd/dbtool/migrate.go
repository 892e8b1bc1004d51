package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/dbadmin"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage schema migrations",
	Long: `Apply or roll back the embedded SQL migrations.

Subcommands:
  up      - apply pending migrations and verify tables
  down    - roll back every migration
  version - print the current schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE:  runMigrateDown,
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE:  runMigrateVersion,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func openMigrator() (*dbadmin.Migrator, error) {
	url, err := resolveDatabaseURL()
	if err != nil {
		return nil, err
	}
	return dbadmin.NewMigrator(url)
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	changed, err := m.Up()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if changed {
		fmt.Fprintln(out, "Migrations applied")
	} else {
		fmt.Fprintln(out, "Schema already up to date")
	}

	return withDB(cmd, func(ctx context.Context, db *sqlx.DB) error {
		inspector := dbadmin.NewInspector(db)

		missing, err := inspector.MissingTables(ctx)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("tables missing after migration: %s", strings.Join(missing, ", "))
		}
		fmt.Fprintf(out, "Tables present: %s\n", strings.Join(dbadmin.RequiredTables, ", "))

		stats, err := inspector.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "users: %d, logs: %d\n", stats.Users, stats.Logs)
		return nil
	})
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	changed, err := m.Down()
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations rolled back")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to roll back")
	}
	return nil
}

func runMigrateVersion(cmd *cobra.Command, _ []string) error {
	m, err := openMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	status, err := m.Status()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatStatus(status))
	return nil
}

func formatStatus(s dbadmin.MigrationStatus) string {
	if !s.Applied {
		return "No migrations applied"
	}
	if s.Dirty {
		return fmt.Sprintf("Version %d (dirty)", s.Version)
	}
	return fmt.Sprintf("Version %d", s.Version)
}
