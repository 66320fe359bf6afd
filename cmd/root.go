package cmd

import (
	"github.com/spf13/cobra"
	"job-tracker/config"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "job-tracker",
		Short: "job tracker demo services",
	}
	rootCmd.AddCommand(backend(config))
	rootCmd.AddCommand(frontend(config))
	return rootCmd
}
