// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Sync      SyncConfig      `koanf:"sync"`
	Alerts    AlertsConfig    `koanf:"alerts"`
	Host      HostConfig      `koanf:"host"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings. When File is set, logs are
// written to a size-rotated file instead of stdout.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// ClientConfig holds settings for the outbound alert bridge client.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting. Zero RequestsPerSecond
// disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// SyncConfig holds the sync engine's timers and transaction settings.
type SyncConfig struct {
	DetectInterval         time.Duration `koanf:"detect_interval"`
	RefreshInterval        time.Duration `koanf:"refresh_interval"`
	TransactionLabel       string        `koanf:"transaction_label"`
	MarkerTag              string        `koanf:"marker_tag"`
	MaxConsecutiveFailures int           `koanf:"max_consecutive_failures"`
}

// AlertsConfig selects where user-facing alerts go.
type AlertsConfig struct {
	Sink string `koanf:"sink"`
}

// HostConfig describes the host document the engine attaches to.
type HostConfig struct {
	Kind         string `koanf:"kind"`
	Fixture      string `koanf:"fixture"`
	WatchFixture bool   `koanf:"watch_fixture"`
}

// Alert sink kinds.
const (
	AlertSinkLog  = "log"
	AlertSinkHTTP = "http"
)

// HostKindMemory is the in-process host document.
const HostKindMemory = "memory"
