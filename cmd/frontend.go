package cmd

import (
	"github.com/spf13/cobra"
	"job-tracker/config"
	"job-tracker/server"
)

func frontend(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "frontend",
		Short: "start the dashboard and backend proxy",
		Run: func(cmd *cobra.Command, args []string) {
			server.RunFrontend(config)
		},
	}
}
