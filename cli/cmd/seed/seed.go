package seed

import (
	"fmt"

	"github.com/artofest/artofest/cli/cmd"
	"github.com/artofest/artofest/cli/helpers"
	"github.com/artofest/artofest/engine/festival/dataset"
	"github.com/artofest/artofest/engine/infra/postgres"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/spf13/cobra"
)

// NewCommand creates the seed command.
func NewCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "seed",
		Short: "Import a festival dataset into the database",
		Long: "Normalize a JSON or YAML festival dataset and write it to the festivals, " +
			"art_forms and genres tables in a single transaction",
		Args: cobra.NoArgs,
		RunE: run,
	}
	c.Flags().String("dataset", "", "Path to the dataset file (.json, .yaml, .yml)")
	c.Flags().Bool("truncate", false, "Remove existing festivals before importing")
	c.Flags().Bool("migrate", false, "Apply database migrations before importing")
	return c
}

func run(cobraCmd *cobra.Command, _ []string) error {
	ctx := cobraCmd.Context()
	cfg, err := cmd.Config(ctx)
	if err != nil {
		return err
	}
	truncate, err := cobraCmd.Flags().GetBool("truncate")
	if err != nil {
		return fmt.Errorf("failed to get truncate flag: %w", err)
	}
	festivals, err := dataset.LoadFestivals(ctx, cfg.Dataset.Path)
	if err != nil {
		return err
	}
	dbCfg := postgres.ConfigFromApp(&cfg.Database)
	if cfg.Database.MigrateOnStart {
		if err := postgres.ApplyMigrationsWithLock(ctx, postgres.DSN(dbCfg)); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
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
	var opts []postgres.SeederOption
	if truncate {
		opts = append(opts, postgres.WithTruncate())
	}
	result, err := postgres.NewSeeder(store.Pool(), opts...).Seed(ctx, festivals)
	if err != nil {
		return err
	}
	helpers.Success(
		cobraCmd.OutOrStdout(),
		"Imported %d festivals (%d art forms, %d genres)",
		result.Festivals, result.ArtForms, result.Genres,
	)
	return nil
}
