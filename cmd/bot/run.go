package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var prefix, db string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(prefix, db)
			if err != nil {
				return err
			}
			if err := cfg.RequireToken(); err != nil {
				return err
			}

			ctx := cmd.Context()
			bot, cleanup, err := initializeBot(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.WithField("prefix", cfg.Prefix).Info("starting bot")
			return bot.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "command prefix (overrides COMMAND_PREFIX)")
	cmd.Flags().StringVar(&db, "db", "", "SQLite file or database URL (overrides DB_FILE and DATABASE_URL)")
	return cmd
}
