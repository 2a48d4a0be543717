package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var p problems
	c.Server.check(&p)
	c.Log.check(&p)
	c.Client.check(&p)
	c.Telemetry.check(&p)
	c.Sync.check(&p)
	c.Alerts.check(&p)
	c.Host.check(&p)
	return errors.Join(p...)
}

// problems collects validation failures.
type problems []error

func (p *problems) require(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

func (p *problems) oneOf(key, got string, allowed ...string) {
	p.require(slices.Contains(allowed, got), "%s must be one of %v, got %q", key, allowed, got)
}

func (s *ServerConfig) check(p *problems) {
	p.require(s.Port > 0 && s.Port <= 65535, "server.port must be between 1 and 65535, got %d", s.Port)
	p.require(s.ReadTimeout > 0, "server.read_timeout must be positive, got %s", s.ReadTimeout)
	p.require(s.WriteTimeout > 0, "server.write_timeout must be positive, got %s", s.WriteTimeout)
}

func (l *LogConfig) check(p *problems) {
	p.oneOf("log.level", l.Level, "debug", "info", "warn", "error")
	p.oneOf("log.format", l.Format, "json", "text")
	if l.File != "" {
		p.require(l.MaxSizeMB >= 1, "log.max_size_mb must be >= 1 when log.file is set, got %d", l.MaxSizeMB)
	}
}

func (cl *ClientConfig) check(p *problems) {
	p.require(cl.BaseURL != "", "client.base_url must not be empty")
	p.require(cl.Timeout > 0, "client.timeout must be positive, got %s", cl.Timeout)
	p.require(cl.Retry.MaxAttempts >= 1, "client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts)
	p.require(cl.Retry.Multiplier > 0, "client.retry.multiplier must be positive, got %g", cl.Retry.Multiplier)
	p.require(cl.CircuitBreaker.MaxFailures >= 1,
		"client.circuit_breaker.max_failures must be >= 1, got %d", cl.CircuitBreaker.MaxFailures)

	rps := cl.RateLimit.RequestsPerSecond
	p.require(rps >= 0, "client.rate_limit.requests_per_second must not be negative, got %g", rps)
	if rps > 0 {
		p.require(cl.RateLimit.BurstSize >= 1, "client.rate_limit.burst_size must be >= 1, got %d", cl.RateLimit.BurstSize)
	}
}

func (t *TelemetryConfig) check(p *problems) {
	if !t.Enabled {
		return
	}
	p.oneOf("telemetry.exporter", t.Exporter, "stdout", "otlp")
	if t.Exporter == "otlp" {
		p.require(t.Endpoint != "", "telemetry.endpoint must be set for the otlp exporter")
	}
}

func (s *SyncConfig) check(p *problems) {
	p.require(s.DetectInterval > 0, "sync.detect_interval must be positive, got %s", s.DetectInterval)
	p.require(s.RefreshInterval > 0, "sync.refresh_interval must be positive, got %s", s.RefreshInterval)
	p.require(s.MaxConsecutiveFailures >= 1,
		"sync.max_consecutive_failures must be >= 1, got %d", s.MaxConsecutiveFailures)
}

func (a *AlertsConfig) check(p *problems) {
	p.oneOf("alerts.sink", a.Sink, AlertSinkLog, AlertSinkHTTP)
}

func (h *HostConfig) check(p *problems) {
	p.oneOf("host.kind", h.Kind, HostKindMemory)
	if h.WatchFixture {
		p.require(h.Fixture != "", "host.fixture must be set when host.watch_fixture is enabled")
	}
}
