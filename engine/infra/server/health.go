package server

import (
	"context"
	"net/http"
	"time"

	"github.com/artofest/artofest/engine/infra/server/appstate"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
	healthTimeout     = 2 * time.Second
)

// CreateHealthHandler answers 200 when the store responds to a ping and 503
// otherwise.
func CreateHealthHandler(checker appstate.HealthChecker, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker == nil {
			c.JSON(http.StatusOK, gin.H{"status": statusOK, "version": version})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := checker.HealthCheck(ctx); err != nil {
			logger.FromContext(ctx).Warn("Health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": statusUnavailable, "version": version})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": statusOK, "version": version})
	}
}
