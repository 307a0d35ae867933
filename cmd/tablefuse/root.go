package main

import (
	"github.com/spf13/cobra"

	"github.com/tablefuse/tablefuse/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tablefuse",
	Short: "Cross-page table reconciliation for paginated documents",
	Long: `Tablefuse ingests tabular regions extracted page-by-page from a
paginated document and reconciles them into complete logical tables.

The pipeline includes:
  - Content fingerprinting and similarity-based cross-page merging
  - Duplicate-storm detection and suppression
  - A time-bounded reconciliation cache with periodic eviction
  - Bounded-buffer batch dispatch to mapping consumers off the
    extraction path`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.tablefuse/config.yaml)",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(configCmd)
}
