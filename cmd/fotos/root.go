package main

import (
	"github.com/spf13/cobra"

	"fotos/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "fotos",
		Short: "Fotos is a local-first photo album manager",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLoggerForCLI(logLevel, cfg.LogLevel)
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPhotoCmd(cfg, &jsonOutput),
		newAlbumCmd(cfg, &jsonOutput),
		newVerifyCmd(cfg, &jsonOutput),
	)

	return cmd
}
