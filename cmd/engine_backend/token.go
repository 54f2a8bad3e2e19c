package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/coa_ledger_engine/internal/utils"
)

// newTokenCmd mints a bearer token for the configured JWT secret, for operators and smoke tests.
func newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			signed, err := utils.IssueAccessToken(userID, cfg.JWTSecret, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id recorded as created_by")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
