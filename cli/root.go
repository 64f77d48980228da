package cli

import (
	"context"
	"fmt"

	dbcmd "github.com/artofest/artofest/cli/cmd/db"
	"github.com/artofest/artofest/cli/cmd/migrate"
	"github.com/artofest/artofest/cli/cmd/search"
	"github.com/artofest/artofest/cli/cmd/seed"
	"github.com/artofest/artofest/cli/cmd/serve"
	versioncmd "github.com/artofest/artofest/cli/cmd/version"
	"github.com/artofest/artofest/pkg/config"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "artofest",
		Short:         "Art festival discovery service",
		Long:          "Search festival datasets and serve the festivals API backed by PostgreSQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "artofest.yaml", "Path to the config file")
	flags.String("env-file", ".env", "Path to the environment variables file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Output logs in JSON format")
	flags.Bool("log-source", false, "Include source file and line in logs")
	flags.String("log-file", "", "Also write logs to a rotated file")
	flags.String("db-host", "", "Database host")
	flags.String("db-port", "", "Database port")
	flags.String("db-user", "", "Database user")
	flags.String("db-password", "", "Database password")
	flags.String("db-name", "", "Database name")
	flags.String("db-ssl-mode", "", "Database SSL mode")
	flags.String("db-conn-string", "", "Database connection string (overrides the individual db flags)")

	root.AddCommand(
		serve.NewCommand(),
		search.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		dbcmd.NewCommand(),
		versioncmd.NewCommand(),
	)
	return root
}

// SetupGlobalConfig loads the env file, installs the logger and attaches the
// configuration manager to the command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	opts, err := logger.GetLoggerOptions(cmd)
	if err != nil {
		return err
	}
	log := logger.Setup(opts)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.ContextWithLogger(ctx, log)
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cliFlags := make(map[string]any)
	extractCLIFlags(cmd, cliFlags)
	manager := config.NewManager(config.NewService())
	if _, err := manager.Load(ctx, config.NewYAMLProvider(configPath), config.NewCLIProvider(cliFlags)); err != nil {
		return err
	}
	cmd.SetContext(config.ContextWithManager(ctx, manager))
	return nil
}
