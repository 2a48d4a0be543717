package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irebix/LayerVisSync/internal/platform/config"
)

const shippedConfigs = "../../../configs"

// configDir writes base.yaml plus the given profile files into a temp dir.
func configDir(t *testing.T, base string, profiles map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{"base": base}
	for name, body := range profiles {
		files[name] = body
	}
	for name, body := range files {
		if body == "" {
			body = "{}\n"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o600))
	}
	return dir
}

func TestLoad_ShippedProfiles(t *testing.T) {
	t.Parallel()

	local, err := config.Load("local", config.WithConfigDir(shippedConfigs))
	require.NoError(t, err)
	assert.Equal(t, "debug", local.Log.Level)
	assert.Equal(t, "text", local.Log.Format)
	assert.True(t, local.Host.WatchFixture)
	assert.False(t, local.Telemetry.Enabled)
	assert.Equal(t, 50*time.Millisecond, local.Sync.DetectInterval)
	assert.Equal(t, 500*time.Millisecond, local.Sync.RefreshInterval)
	assert.Equal(t, config.AlertSinkLog, local.Alerts.Sink)

	prod, err := config.Load("prod", config.WithConfigDir(shippedConfigs))
	require.NoError(t, err)
	assert.Equal(t, "json", prod.Log.Format)
	assert.NotEmpty(t, prod.Log.File)
	assert.Equal(t, "otlp", prod.Telemetry.Exporter)
	assert.NotEmpty(t, prod.Telemetry.Endpoint)
	assert.Equal(t, config.AlertSinkHTTP, prod.Alerts.Sink)
	assert.Equal(t, "0.0.0.0", prod.Server.Host, "inherited from base.yaml")
}

func TestLoad_LayerPrecedence(t *testing.T) {
	dir := configDir(t,
		"server:\n  port: 7000\nsync:\n  refresh_interval: 1s\n",
		map[string]string{"dev": "sync:\n  refresh_interval: 2s\n"},
	)
	t.Setenv("APP_SYNC_REFRESH_INTERVAL", "3s")

	cfg, err := config.Load("dev", config.WithConfigDir(dir))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port, "base overrides default")
	assert.Equal(t, 3*time.Second, cfg.Sync.RefreshInterval, "env overrides profile")
	assert.Equal(t, 50*time.Millisecond, cfg.Sync.DetectInterval, "default survives")
	assert.Equal(t, "Sync layer visibility", cfg.Sync.TransactionLabel)
}

func TestLoad_EnvNames(t *testing.T) {
	dir := configDir(t, "", map[string]string{"dev": ""})

	tests := []struct {
		env, value string
		got        func(*config.Config) any
		want       any
	}{
		{"APP_SERVER_PORT", "9090", func(c *config.Config) any { return c.Server.Port }, 9090},
		{"APP_SERVER_READ_TIMEOUT", "15s", func(c *config.Config) any { return c.Server.ReadTimeout }, 15 * time.Second},
		{"APP_CLIENT_RETRY_MAX_ATTEMPTS", "7", func(c *config.Config) any { return c.Client.Retry.MaxAttempts }, 7},
		{"APP_SYNC_MARKER_TAG", "synced", func(c *config.Config) any { return c.Sync.MarkerTag }, "synced"},
		{"APP_LOG_MAX_SIZE_MB", "12", func(c *config.Config) any { return c.Log.MaxSizeMB }, 12},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			cfg, err := config.Load("dev", config.WithConfigDir(dir))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.got(cfg))
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := configDir(t, "", map[string]string{
		"broken":  "server: [unclosed\n",
		"badport": "server:\n  port: 0\n",
	})

	tests := map[string]string{
		"":        "must not be empty",
		"../etc":  "bare file name",
		`a\b`:     "bare file name",
		"missing": "missing.yaml",
		"broken":  "broken.yaml",
		"badport": "server.port",
	}

	for profile, want := range tests {
		t.Run(profile, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(profile, config.WithConfigDir(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate func(*config.Config)
		want   string
	}{
		"port zero":                {func(c *config.Config) { c.Server.Port = 0 }, "server.port"},
		"port too high":            {func(c *config.Config) { c.Server.Port = 70000 }, "server.port"},
		"log level":                {func(c *config.Config) { c.Log.Level = "verbose" }, "log.level"},
		"log format":               {func(c *config.Config) { c.Log.Format = "xml" }, "log.format"},
		"log file without size":    {func(c *config.Config) { c.Log.File = "app.log" }, "log.max_size_mb"},
		"client base url":          {func(c *config.Config) { c.Client.BaseURL = "" }, "client.base_url"},
		"rate limit without burst": {func(c *config.Config) { c.Client.RateLimit.RequestsPerSecond = 5 }, "burst_size"},
		"negative rate":            {func(c *config.Config) { c.Client.RateLimit.RequestsPerSecond = -1 }, "requests_per_second"},
		"otlp without endpoint": {func(c *config.Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Exporter = "otlp"
		}, "telemetry.endpoint"},
		"unknown exporter": {func(c *config.Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Exporter = "zipkin"
		}, "telemetry.exporter"},
		"detect interval":       {func(c *config.Config) { c.Sync.DetectInterval = 0 }, "sync.detect_interval"},
		"refresh interval":      {func(c *config.Config) { c.Sync.RefreshInterval = -time.Second }, "sync.refresh_interval"},
		"failure threshold":     {func(c *config.Config) { c.Sync.MaxConsecutiveFailures = 0 }, "sync.max_consecutive_failures"},
		"alert sink":            {func(c *config.Config) { c.Alerts.Sink = "email" }, "alerts.sink"},
		"host kind":             {func(c *config.Config) { c.Host.Kind = "photoshop" }, "host.kind"},
		"watch without fixture": {func(c *config.Config) { c.Host.WatchFixture = true }, "host.fixture"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Sync.DetectInterval = 0
	cfg.Alerts.Sink = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, strings.Split(err.Error(), "\n"), 3)
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())
}

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second},
		Log:    config.LogConfig{Level: "info", Format: "json"},
		Client: config.ClientConfig{
			BaseURL:        "http://localhost:8081",
			Timeout:        time.Second,
			Retry:          config.RetryConfig{MaxAttempts: 3, InitialInterval: 10 * time.Millisecond, MaxInterval: time.Second, Multiplier: 2},
			CircuitBreaker: config.CircuitBreakerConfig{MaxFailures: 5, Timeout: time.Second, HalfOpenLimit: 1},
		},
		Telemetry: config.TelemetryConfig{Exporter: "stdout"},
		Sync: config.SyncConfig{
			DetectInterval:         50 * time.Millisecond,
			RefreshInterval:        500 * time.Millisecond,
			TransactionLabel:       "Sync layer visibility",
			MaxConsecutiveFailures: 5,
		},
		Alerts: config.AlertsConfig{Sink: config.AlertSinkLog},
		Host:   config.HostConfig{Kind: config.HostKindMemory},
	}
}
