package server

import (
	"github.com/artofest/artofest/engine/infra/monitoring"
	"github.com/artofest/artofest/engine/infra/server/appstate"
	"github.com/artofest/artofest/engine/infra/server/middleware/ratelimit"
	"github.com/artofest/artofest/engine/infra/server/router"
	"github.com/artofest/artofest/engine/infra/server/routes"
	"github.com/artofest/artofest/pkg/config"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/gin-gonic/gin"
)

func convertRateLimitConfig(cfg *config.Config, metricsPath string) *ratelimit.Config {
	return &ratelimit.Config{
		Limit:  cfg.RateLimit.Limit,
		Period: cfg.RateLimit.Period,
		Prefix: "artofest:ratelimit:",
		ExcludedPaths: []string{
			routes.Health(),
			routes.Docs(),
			metricsPath,
		},
	}
}

// NewRouter assembles the gin engine: recovery, metrics, rate limiting,
// request logging, CORS, app state and routes.
func NewRouter(cfg *config.Config, state *appstate.State, mon *monitoring.Service, log logger.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(router.Recovery())
	if mon.IsInitialized() {
		r.Use(mon.GinMiddleware())
	}
	if cfg.RateLimit.Limit > 0 {
		manager, err := ratelimit.NewManager(convertRateLimitConfig(cfg, mon.Path()), mon.Registerer())
		if err != nil {
			return nil, err
		}
		r.Use(manager.Middleware())
		log.Info("Rate limiter initialized",
			"driver", "memory",
			"limit", cfg.RateLimit.Limit,
			"period", cfg.RateLimit.Period)
	}
	r.Use(LoggerMiddleware(log))
	if cfg.Server.CORSEnabled {
		r.Use(CORSMiddleware(cfg.Server.CORS))
	}
	r.Use(appstate.StateMiddleware(state))
	r.Use(router.ErrorHandler())
	if mon.IsInitialized() {
		r.GET(mon.Path(), gin.WrapH(mon.ExporterHandler()))
	}
	RegisterRoutes(r, state, &cfg.Server, log)
	return r, nil
}
