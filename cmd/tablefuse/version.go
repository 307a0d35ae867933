package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablefuse/tablefuse/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tablefuse %s (%s)\n", version.GitRelease, version.GitCommit)
	},
}
