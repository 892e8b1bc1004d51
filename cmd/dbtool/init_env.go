package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/dbadmin"
)

var initEnvFlags struct {
	dir   string
	force bool
}

var initEnvCmd = &cobra.Command{
	Use:   "init-env",
	Short: "Write .env and .env.prod templates",
	Long: `Write the development (.env) and production (.env.prod) environment
templates. Existing files are kept unless --force is given.`,
	RunE: runInitEnv,
}

func init() {
	rootCmd.AddCommand(initEnvCmd)

	initEnvCmd.Flags().StringVar(&initEnvFlags.dir, "dir", ".", "output directory")
	initEnvCmd.Flags().BoolVar(&initEnvFlags.force, "force", false, "overwrite existing files")
}

func runInitEnv(cmd *cobra.Command, _ []string) error {
	results, err := dbadmin.WriteEnvFiles(initEnvFlags.dir, initEnvFlags.force)
	for _, r := range results {
		if r.Written {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", r.Path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "exists  %s (use --force to overwrite)\n", r.Path)
		}
	}
	return err
}
