package postgres

import (
	"strings"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultPoolLabel = "default"
	metricsNamespace = "artofest"
	metricsSubsystem = "postgres"
)

// PoolCollector exports pgx pool statistics as Prometheus gauges. It reports
// nothing until a pool is attached.
type PoolCollector struct {
	label string
	pool  atomic.Pointer[pgxpool.Pool]

	acquired      *prometheus.Desc
	idle          *prometheus.Desc
	total         *prometheus.Desc
	maxConns      *prometheus.Desc
	emptyAcquires *prometheus.Desc
	acquireWait   *prometheus.Desc
}

func NewPoolCollector(label string) *PoolCollector {
	if label == "" {
		label = defaultPoolLabel
	}
	constLabels := prometheus.Labels{"pool": label}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, metricsSubsystem, name),
			help,
			nil,
			constLabels,
		)
	}
	return &PoolCollector{
		label:         label,
		acquired:      desc("connections_in_use", "Number of Postgres connections currently in use"),
		idle:          desc("connections_idle", "Number of idle Postgres connections"),
		total:         desc("connections_open", "Number of open Postgres connections"),
		maxConns:      desc("max_open_connections", "Configured Postgres connection pool size"),
		emptyAcquires: desc("empty_acquire_total", "Acquires that had to wait for a connection"),
		acquireWait:   desc("empty_acquire_wait_seconds_total", "Time spent waiting for a connection from the pool"),
	}
}

func (c *PoolCollector) Label() string { return c.label }

func (c *PoolCollector) attach(pool *pgxpool.Pool) { c.pool.Store(pool) }

func (c *PoolCollector) detach() { c.pool.Store(nil) }

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.maxConns
	ch <- c.emptyAcquires
	ch <- c.acquireWait
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	pool := c.pool.Load()
	if pool == nil {
		return
	}
	stats := pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(stats.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(stats.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(stats.MaxConns()))
	ch <- prometheus.MustNewConstMetric(
		c.emptyAcquires,
		prometheus.CounterValue,
		float64(stats.EmptyAcquireCount()),
	)
	ch <- prometheus.MustNewConstMetric(
		c.acquireWait,
		prometheus.CounterValue,
		stats.EmptyAcquireWaitTime().Seconds(),
	)
}

func computePoolLabel(cfg *Config) string {
	if cfg == nil {
		return defaultPoolLabel
	}
	raw := []string{cfg.Host, cfg.Port, cfg.DBName}
	parts := make([]string, 0, len(raw))
	for _, c := range raw {
		if s := sanitizeLabelComponent(c); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return defaultPoolLabel
	}
	joined := strings.Join(parts, "-")
	return strings.Trim(strings.Trim(joined, "-"), "_")
}

func sanitizeLabelComponent(component string) string {
	trimmed := strings.TrimSpace(component)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	var builder strings.Builder
	for _, r := range lower {
		if isLabelRune(r) {
			builder.WriteRune(r)
			continue
		}
		builder.WriteRune('_')
	}
	return strings.Trim(builder.String(), "_")
}

func isLabelRune(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case '-', '.', ':':
		return true
	default:
		return false
	}
}
