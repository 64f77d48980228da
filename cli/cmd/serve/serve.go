package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/artofest/artofest/cli/cmd"
	"github.com/artofest/artofest/cli/helpers"
	"github.com/artofest/artofest/engine/infra/server"
	"github.com/artofest/artofest/pkg/config"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	productionEnvironment = "production"
	disableSSLMode        = "disable"
)

// NewCommand creates the serve command.
func NewCommand() *cobra.Command {
	c := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the festivals API server",
		Long:    "Start the HTTP server exposing GET /api/festivals until interrupted",
		Args:    cobra.NoArgs,
		RunE:    run,
	}
	c.Flags().String("host", "", "Host interface for the server to bind to")
	c.Flags().Int("port", 0, "Port to run the server on")
	c.Flags().Bool("cors", true, "Enable CORS")
	c.Flags().String("images-dir", "", "Directory served under /images")
	c.Flags().Bool("migrate", false, "Apply database migrations before serving")
	return c
}

func run(cobraCmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cobraCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg, err := cmd.Config(ctx)
	if err != nil {
		return err
	}
	if cfg.Runtime.Environment == productionEnvironment {
		gin.SetMode(gin.ReleaseMode)
		logProductionWarnings(ctx, cfg)
	}
	if err := helpers.EnsurePortAvailable(ctx, cfg.Server.Host, cfg.Server.Port); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Starting artofest server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	srv, err := server.NewServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run()
}

func logProductionWarnings(ctx context.Context, cfg *config.Config) {
	log := logger.FromContext(ctx)
	if cfg.Database.SSLMode == disableSSLMode {
		log.Warn("Database SSL is disabled in production; consider database.ssl_mode=require")
	}
	for _, origin := range cfg.Server.CORS.AllowedOrigins {
		if strings.TrimSpace(origin) == "*" {
			log.Warn("CORS allows any origin in production; consider listing server.cors.allowed_origins")
			break
		}
	}
	if cfg.RateLimit.Limit == 0 {
		log.Warn("Rate limiting is disabled; consider setting ratelimit.limit")
	}
}
