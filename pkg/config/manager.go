package config

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/artofest/artofest/pkg/logger"
)

// Manager holds the active configuration and the sources it was built from.
type Manager struct {
	Service  Service
	current  atomic.Pointer[Config]
	sources  []Source
	reloadMu sync.Mutex
}

// NewManager creates a new configuration manager.
func NewManager(service Service) *Manager {
	if service == nil {
		service = NewService()
	}
	return &Manager{Service: service}
}

// Load loads configuration from sources and makes it current.
func (m *Manager) Load(ctx context.Context, sources ...Source) (*Config, error) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()
	m.sources = append([]Source(nil), sources...)
	cfg, err := m.Service.Load(ctx, m.sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	m.current.Store(cfg)
	return cfg, nil
}

// Reload re-reads every source and swaps the configuration atomically.
func (m *Manager) Reload(ctx context.Context) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()
	cfg, err := m.Service.Load(ctx, m.sources...)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	m.current.Store(cfg)
	return nil
}

// Get returns the current configuration, or nil before the first Load.
func (m *Manager) Get() *Config {
	return m.current.Load()
}

// Close releases every source.
func (m *Manager) Close(ctx context.Context) error {
	m.reloadMu.Lock()
	sources := append([]Source(nil), m.sources...)
	m.reloadMu.Unlock()
	for _, source := range sources {
		if source == nil {
			continue
		}
		if err := source.Close(); err != nil {
			logger.FromContext(ctx).Error("failed to close configuration source", "error", err)
		}
	}
	return nil
}
