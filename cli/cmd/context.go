// Package cmd holds what the artofest subcommands share.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/artofest/artofest/engine/infra/postgres"
	"github.com/artofest/artofest/pkg/config"
)

var ErrConfigMissing = errors.New("configuration missing from context; attach a manager with config.ContextWithManager")

// Config returns the configuration loaded by the root command.
func Config(ctx context.Context) (*config.Config, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, ErrConfigMissing
	}
	return cfg, nil
}

// OpenStore connects to the configured database.
func OpenStore(ctx context.Context, cfg *config.Config) (*postgres.Store, error) {
	store, err := postgres.NewStore(ctx, postgres.ConfigFromApp(&cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}
