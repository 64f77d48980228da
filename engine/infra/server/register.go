package server

import (
	fstrouter "github.com/artofest/artofest/engine/festival/router"
	"github.com/artofest/artofest/engine/infra/server/appstate"
	"github.com/artofest/artofest/engine/infra/server/routes"
	"github.com/artofest/artofest/pkg/config"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/artofest/artofest/pkg/version"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API, health, docs and static routes.
func RegisterRoutes(router *gin.Engine, state *appstate.State, cfg *config.ServerConfig, log logger.Logger) {
	router.GET(routes.Health(), CreateHealthHandler(state.Health, version.Get().Version))
	apiBase := router.Group(routes.Base())
	fstrouter.Register(apiBase)
	setupSwaggerDocs(router)
	if cfg != nil && cfg.ImagesDir != "" {
		router.Static(routes.Images(), cfg.ImagesDir)
		log.Debug("Serving static images", "dir", cfg.ImagesDir, "path", routes.Images())
	}
	log.Info("Completed route registration", "api_base", routes.Base())
}
