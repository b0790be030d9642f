package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"print_notifier/internal/config"
)

// newCheckConfigCmd validates the configuration and prints the effective
// settings. Secrets are omitted from the output.
func newCheckConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(*configPath)
			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if file := loader.ConfigFile(); file != "" {
				fmt.Fprintf(out, "# %s\n", file)
			} else {
				fmt.Fprintln(out, "# no config file found, using defaults")
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			return enc.Close()
		},
	}
}
