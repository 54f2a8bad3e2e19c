package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/coa_ledger_engine/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(mg *database.Migrator, logger *slog.Logger) error {
				applied, err := mg.Up()
				if err != nil {
					return err
				}
				logger.Info("Migrate up finished", slog.Bool("changed", applied))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withMigrator(func(mg *database.Migrator, logger *slog.Logger) error {
				reverted, err := mg.Down()
				if err != nil {
					return err
				}
				logger.Info("Migrate down finished", slog.Bool("changed", reverted))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: withMigrator(func(mg *database.Migrator, logger *slog.Logger) error {
				version, dirty, err := mg.Version()
				if err != nil {
					return err
				}
				logger.Info("Schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
				return nil
			}),
		},
	)
	return migrateCmd
}

func withMigrator(fn func(*database.Migrator, *slog.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		mg, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := mg.Close(); cerr != nil {
				logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
			}
		}()
		return fn(mg, logger)
	}
}
