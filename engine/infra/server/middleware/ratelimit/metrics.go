package ratelimit

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	blocked *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}
	blocked := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "artofest",
		Name:      "rate_limit_blocks_total",
		Help:      "Total number of requests blocked by rate limiting",
	}, []string{"route"})
	if err := reg.Register(blocked); err != nil {
		return nil, fmt.Errorf("registering rate limit metrics: %w", err)
	}
	return &metrics{blocked: blocked}, nil
}

func (m *metrics) incrementBlocked(route string) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.blocked.WithLabelValues(route).Inc()
}
