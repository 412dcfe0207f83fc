package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"eventbot/internal/config"
	"eventbot/internal/infrastructure/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eventbot",
		Short:         "A Discord bot managing events backed by a role and a private channel.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newMigrateCmd())
	return root
}

// loadConfig loads the configuration, applies the flag overrides and builds
// the logger it describes.
func loadConfig(prefix, db string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Override(prefix, db); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
