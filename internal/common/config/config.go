// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// SessionConfig controls where in-progress form sessions live.
type SessionConfig struct {
	Store     string `mapstructure:"store"`      // memory | redis
	TTL       int    `mapstructure:"ttl"`        // seconds
	KeyPrefix string `mapstructure:"key_prefix"` // redis only
}

// TTLDuration returns the session TTL as a time.Duration.
func (s SessionConfig) TTLDuration() time.Duration {
	return time.Duration(s.TTL) * time.Second
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MetricsConfig controls the health/metrics listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// TracingConfig controls span sampling for session event batches.
type TracingConfig struct {
	SampleRatio float64 `mapstructure:"sample_ratio"`
}
