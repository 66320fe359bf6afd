package cmd

import (
	"github.com/spf13/cobra"
	"job-tracker/config"
	"job-tracker/server"
)

func backend(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "start the job tracker REST API",
		Run: func(cmd *cobra.Command, args []string) {
			server.RunBackend(config)
		},
	}
}
