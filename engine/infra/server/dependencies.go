package server

import (
	"context"
	"fmt"
	"time"

	"github.com/artofest/artofest/engine/infra/monitoring"
	"github.com/artofest/artofest/engine/infra/postgres"
	"github.com/artofest/artofest/engine/infra/server/appstate"
	"github.com/artofest/artofest/pkg/logger"
)

func (s *Server) setupMonitoring() *monitoring.Service {
	return monitoring.NewMonitoringServiceWithFallback(s.ctx, monitoring.FromAppConfig(&s.config.Metrics))
}

func (s *Server) setupStore() (*postgres.Store, func(), error) {
	dbCfg := postgres.ConfigFromApp(&s.config.Database)
	start := time.Now()
	if s.config.Database.MigrateOnStart {
		if err := postgres.ApplyMigrationsWithLock(s.ctx, postgres.DSN(dbCfg)); err != nil {
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}
	store, err := postgres.NewStore(s.ctx, dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(context.WithoutCancel(s.ctx)); err != nil {
			logger.FromContext(s.ctx).Error("Failed to close store", "error", err)
		}
	}
	logger.FromContext(s.ctx).Info("Database store initialized",
		"driver", "postgres",
		"duration", time.Since(start),
		"host", dbCfg.Host,
		"port", dbCfg.Port,
		"database", dbCfg.DBName,
	)
	return store, cleanup, nil
}

func (s *Server) setupDependencies() (*appstate.State, *monitoring.Service, []func(), error) {
	cleanups := make([]func(), 0, 1)
	mon := s.setupMonitoring()
	store, storeCleanup, err := s.setupStore()
	if err != nil {
		return nil, nil, cleanups, err
	}
	cleanups = append(cleanups, storeCleanup)
	if err := mon.Register(store.Collector()); err != nil {
		logger.FromContext(s.ctx).Warn("Postgres pool metrics not registered", "error", err)
	}
	deps := appstate.NewBaseDeps(postgres.NewFestivalRepo(store.Pool()), store)
	state, err := appstate.NewState(deps, mon)
	if err != nil {
		return nil, nil, cleanups, err
	}
	return state, mon, cleanups, nil
}
