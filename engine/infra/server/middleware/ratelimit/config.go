package ratelimit

import (
	"fmt"
	"time"
)

// Config represents rate limiting configuration
type Config struct {
	Limit  int64
	Period time.Duration
	Prefix string

	// ExcludedPaths are never limited (health probes, metrics scrapes).
	ExcludedPaths []string
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() *Config {
	return &Config{
		Limit:  100,
		Period: 1 * time.Minute,
		Prefix: "artofest:ratelimit:",
	}
}

func (c *Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("rate limit must be positive: got %d", c.Limit)
	}
	if c.Period <= 0 {
		return fmt.Errorf("rate limit period must be positive: got %s", c.Period)
	}
	return nil
}
