package config

import (
	"context"
	"time"
)

// Config represents the complete configuration for the artofest service.
type Config struct {
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Database  DatabaseConfig  `koanf:"database"  validate:"required"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Runtime   RuntimeConfig   `koanf:"runtime"   validate:"required"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"        env:"SERVER_HOST"`
	Port            int           `koanf:"port"             validate:"min=1,max=65535" env:"SERVER_PORT"`
	CORSEnabled     bool          `koanf:"cors_enabled"                                env:"SERVER_CORS_ENABLED"`
	CORS            CORSConfig    `koanf:"cors"`
	ImagesDir       string        `koanf:"images_dir"                                  env:"SERVER_IMAGES_DIR"`
	ReadTimeout     time.Duration `koanf:"read_timeout"                                env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `koanf:"write_timeout"                               env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"                            env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// CORSConfig contains CORS configuration. An origin of "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"   env:"SERVER_CORS_ALLOWED_ORIGINS"`
	AllowCredentials bool     `koanf:"allow_credentials" env:"SERVER_CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `koanf:"max_age"           env:"SERVER_CORS_MAX_AGE"           validate:"min=0"`
}

// DatabaseConfig contains database connection configuration.
type DatabaseConfig struct {
	ConnString      string          `koanf:"conn_string"        env:"DB_CONN_STRING"`
	Host            string          `koanf:"host"               env:"DB_HOST"`
	Port            string          `koanf:"port"               env:"DB_PORT"`
	User            string          `koanf:"user"               env:"DB_USER"`
	Password        SensitiveString `koanf:"password"           env:"DB_PASSWORD"           sensitive:"true"`
	DBName          string          `koanf:"name"               env:"DB_NAME"`
	SSLMode         string          `koanf:"ssl_mode"           env:"DB_SSL_MODE"`
	MaxOpenConns    int             `koanf:"max_open_conns"     env:"DB_MAX_OPEN_CONNS"     validate:"min=0"`
	MaxIdleConns    int             `koanf:"max_idle_conns"     env:"DB_MAX_IDLE_CONNS"     validate:"min=0"`
	ConnMaxLifetime time.Duration   `koanf:"conn_max_lifetime"  env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration   `koanf:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
	PingTimeout     time.Duration   `koanf:"ping_timeout"       env:"DB_PING_TIMEOUT"`
	MigrateOnStart  bool            `koanf:"migrate_on_start"   env:"DB_MIGRATE_ON_START"`
}

// DatasetConfig points at the static festival dataset used by the search command.
type DatasetConfig struct {
	Path          string `koanf:"path"           env:"DATASET_PATH"`
	FeaturedCount int    `koanf:"featured_count" env:"DATASET_FEATURED_COUNT" validate:"min=0"`
}

// RateLimitConfig limits requests per client IP. A zero limit disables it.
type RateLimitConfig struct {
	Limit  int64         `koanf:"limit"  env:"RATELIMIT_LIMIT"  validate:"min=0"`
	Period time.Duration `koanf:"period" env:"RATELIMIT_PERIOD"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled" env:"METRICS_ENABLED"`
	Path    string `koanf:"path"    env:"METRICS_PATH"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production" env:"RUNTIME_ENVIRONMENT"`
	LogLevel    string `koanf:"log_level"   validate:"oneof=debug info warn error disabled" env:"RUNTIME_LOG_LEVEL"`
}

// Service defines the configuration management service interface.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type that provided a configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	Load() (map[string]any, error)
	Type() SourceType
	Close() error
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Default returns a Config with default values for development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        5000,
			CORSEnabled: true,
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
				MaxAge:         86400,
			},
			ImagesDir:       "",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        SensitiveString(""),
			DBName:          "artofest",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			PingTimeout:     3 * time.Second,
		},
		Dataset: DatasetConfig{
			Path:          "data/festivals.json",
			FeaturedCount: 8,
		},
		RateLimit: RateLimitConfig{
			Limit:  0,
			Period: time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Runtime: RuntimeConfig{
			Environment: "development",
			LogLevel:    "info",
		},
	}
}
