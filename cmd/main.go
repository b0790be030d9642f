package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "print_notifier/docs"
)

//	@title						print_notifier API
//	@version					1.0
//	@description				Printer notification engine: host ingest, admin commands and notification history.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "printnotify",
		Short:        "Watches a 3D printer and pushes notifications to registered devices",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the monitor and the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		newCheckConfigCmd(&configPath),
	)
	return root
}
