package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"eventbot/internal/infrastructure/database"
)

func newMigrateCmd() *cobra.Command {
	var db string

	withMigrator := func(fn func(m *database.Migrator) error) error {
		cfg, _, err := loadConfig("", db)
		if err != nil {
			return err
		}
		target, err := database.ParseTarget(cfg.StoreURL())
		if err != nil {
			return err
		}
		m, err := database.NewMigrator(target)
		if err != nil {
			return err
		}
		return errors.Join(fn(m), m.Close())
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&db, "db", "", "SQLite file or database URL (overrides DB_FILE and DATABASE_URL)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *database.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *database.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *database.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}
