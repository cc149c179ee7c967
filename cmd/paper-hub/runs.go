// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-hub/internal/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent pipeline run history",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().String("runlog", "", "run history database path (default from config)")
	runsCmd.Flags().IntP("limit", "n", 10, "maximum runs to show")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("runlog")
	limit, _ := cmd.Flags().GetInt("limit")

	if path == "" {
		path = viper.GetString("run_log.path")
	}
	if !cmd.Flags().Changed("limit") && viper.IsSet("run_log.max_rows") {
		limit = viper.GetInt("run_log.max_rows")
	}
	if path == "" {
		return fmt.Errorf("no run log configured; set run_log.path or pass --runlog")
	}

	store, err := runlog.Open(path)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("reading run log: %w", err)
	}
	runlog.FormatTable(runs, cmd.OutOrStdout())
	return nil
}
