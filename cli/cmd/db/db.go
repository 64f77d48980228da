package db

import (
	"fmt"
	"time"

	"github.com/artofest/artofest/cli/cmd"
	"github.com/artofest/artofest/cli/helpers"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/spf13/cobra"
)

// NewCommand creates the db command group.
func NewCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}
	c.AddCommand(newPingCommand())
	return c
}

func newPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity and print the server time",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			ctx := cobraCmd.Context()
			cfg, err := cmd.Config(ctx)
			if err != nil {
				return err
			}
			store, err := cmd.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(ctx); err != nil {
					logger.FromContext(ctx).Warn("Failed to close database", "error", err)
				}
			}()
			now, err := store.Now(ctx)
			if err != nil {
				return fmt.Errorf("failed to query database time: %w", err)
			}
			helpers.Success(cobraCmd.OutOrStdout(), "Database reachable, server time %s", now.Format(time.RFC3339))
			return nil
		},
	}
}
