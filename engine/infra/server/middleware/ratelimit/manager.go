package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/artofest/artofest/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Manager limits requests per client IP with an in-process store.
type Manager struct {
	config  *Config
	limiter *limiter.Limiter
	metrics *metrics
}

// NewManager builds a limiter. reg may be nil to skip metrics.
func NewManager(cfg *Config, reg prometheus.Registerer) (*Manager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          cfg.Prefix,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	})
	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	rate := limiter.Rate{Period: cfg.Period, Limit: cfg.Limit}
	return &Manager{config: cfg, limiter: limiter.New(store, rate), metrics: m}, nil
}

func (m *Manager) Middleware() gin.HandlerFunc {
	limited := mgin.NewMiddleware(
		m.limiter,
		mgin.WithLimitReachedHandler(m.limitReached),
		mgin.WithErrorHandler(m.storeError),
	)
	return func(c *gin.Context) {
		if m.isExcluded(c.Request.URL.Path) {
			c.Next()
			return
		}
		limited(c)
	}
}

// isExcluded matches an excluded path exactly or any path below it.
func (m *Manager) isExcluded(path string) bool {
	for _, excluded := range m.config.ExcludedPaths {
		if excluded == "" {
			continue
		}
		if path == excluded || strings.HasPrefix(path, strings.TrimSuffix(excluded, "/")+"/") {
			return true
		}
	}
	return false
}

func (m *Manager) limitReached(c *gin.Context) {
	m.metrics.incrementBlocked(c.FullPath())
	logger.FromContext(c.Request.Context()).Warn("Rate limit exceeded",
		"client_ip", c.ClientIP(),
		"path", c.Request.URL.Path,
	)
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too Many Requests"})
}

// storeError logs and lets the request through.
func (m *Manager) storeError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("Rate limiter store failed", "error", fmt.Errorf("ratelimit: %w", err))
	c.Next()
}
