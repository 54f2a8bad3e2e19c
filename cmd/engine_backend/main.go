package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/coa_ledger_engine/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "engine_backend",
		Short:         "Chart-of-accounts mapping and teller ledger posting service",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newTokenCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the JSON logger at the configured level.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
