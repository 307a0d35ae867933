package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablefuse/tablefuse/internal/config"
)

var configInitPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tablefuse configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configInitPath); err == nil {
			return fmt.Errorf("refusing to overwrite existing %s", configInitPath)
		}

		out, err := config.RenderDefault()
		if err != nil {
			return err
		}
		if err := os.WriteFile(configInitPath, out, 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configInitPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "config.yaml", "where to write the config file")
	configCmd.AddCommand(configInitCmd)
}
