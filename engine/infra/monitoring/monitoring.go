package monitoring

import (
	"context"
	"fmt"
	"net/http"

	"github.com/artofest/artofest/engine/infra/monitoring/middleware"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "artofest"

// Service owns the Prometheus registry of the process. A disabled service
// accepts every call and records nothing.
type Service struct {
	config            *Config
	registry          *prometheus.Registry
	http              *middleware.HTTPMetrics
	festivalsReturned prometheus.Histogram
	initialized       bool
	initErr           error
}

func newDisabledService(cfg *Config, initErr error) *Service {
	return &Service{config: cfg, initErr: initErr}
}

// NewMonitoringService builds a service with its own registry.
func NewMonitoringService(ctx context.Context, cfg *Config) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if !cfg.Enabled {
		logger.FromContext(ctx).Debug("Monitoring disabled")
		return newDisabledService(cfg, nil), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid monitoring config: %w", err)
	}
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("registering go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("registering process collector: %w", err)
	}
	httpMetrics, err := middleware.NewHTTPMetrics(registry, metricsNamespace)
	if err != nil {
		return nil, err
	}
	festivalsReturned := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "festivals_returned",
		Help:      "Number of festivals returned per listing request",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
	if err := registry.Register(festivalsReturned); err != nil {
		return nil, fmt.Errorf("registering festivals histogram: %w", err)
	}
	logger.FromContext(ctx).Info("Monitoring initialized", "path", cfg.Path)
	return &Service{
		config:            cfg,
		registry:          registry,
		http:              httpMetrics,
		festivalsReturned: festivalsReturned,
		initialized:       true,
	}, nil
}

// NewMonitoringServiceWithFallback never fails: on error it logs and returns a
// disabled service.
func NewMonitoringServiceWithFallback(ctx context.Context, cfg *Config) *Service {
	svc, err := NewMonitoringService(ctx, cfg)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to initialize monitoring; continuing without metrics", "error", err)
		return newDisabledService(cfg, err)
	}
	return svc
}

func (s *Service) IsInitialized() bool { return s != nil && s.initialized }

func (s *Service) InitializationError() error {
	if s == nil {
		return nil
	}
	return s.initErr
}

// Path is where the exporter is mounted.
func (s *Service) Path() string {
	if s == nil || s.config == nil {
		return DefaultConfig().Path
	}
	return s.config.Path
}

// Register adds an extra collector, such as database pool statistics.
func (s *Service) Register(c prometheus.Collector) error {
	if !s.IsInitialized() {
		return nil
	}
	if err := s.registry.Register(c); err != nil {
		return fmt.Errorf("registering collector: %w", err)
	}
	return nil
}

// Registerer exposes the registry for components that own their metrics.
// Nil when monitoring is disabled.
func (s *Service) Registerer() prometheus.Registerer {
	if !s.IsInitialized() {
		return nil
	}
	return s.registry
}

func (s *Service) GinMiddleware() gin.HandlerFunc {
	if !s.IsInitialized() {
		return func(c *gin.Context) { c.Next() }
	}
	return s.http.Middleware()
}

func (s *Service) ExporterHandler() http.Handler {
	if !s.IsInitialized() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// ObserveFestivalsReturned records the size of one listing response.
func (s *Service) ObserveFestivalsReturned(n int) {
	if !s.IsInitialized() {
		return
	}
	s.festivalsReturned.Observe(float64(n))
}
