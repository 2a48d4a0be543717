package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 28

	defaultSyncMaxFailures = 5
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":        "info",
		"log.format":       "json",
		"log.file":         "",
		"log.max_size_mb":  defaultLogMaxSizeMB,
		"log.max_backups":  defaultLogMaxBackups,
		"log.max_age_days": defaultLogMaxAgeDays,

		"client.base_url":                        "http://localhost:8081",
		"client.timeout":                         "5s",
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "2s",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  0,
		"client.rate_limit.burst_size":           1,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "layersync",

		"sync.detect_interval":          "50ms",
		"sync.refresh_interval":         "500ms",
		"sync.transaction_label":        "Sync layer visibility",
		"sync.marker_tag":               "",
		"sync.max_consecutive_failures": defaultSyncMaxFailures,

		"alerts.sink": AlertSinkLog,

		"host.kind":          HostKindMemory,
		"host.fixture":       "",
		"host.watch_fixture": false,
	}
}
