package migrate

import (
	"fmt"

	"github.com/artofest/artofest/cli/cmd"
	"github.com/artofest/artofest/cli/helpers"
	"github.com/artofest/artofest/engine/infra/postgres"
	"github.com/spf13/cobra"
)

// NewCommand creates the migrate command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			ctx := cobraCmd.Context()
			cfg, err := cmd.Config(ctx)
			if err != nil {
				return err
			}
			dsn := postgres.DSN(postgres.ConfigFromApp(&cfg.Database))
			if err := postgres.ApplyMigrationsWithLock(ctx, dsn); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			helpers.Success(cobraCmd.OutOrStdout(), "Database schema is up to date")
			return nil
		},
	}
}
