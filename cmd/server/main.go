// Package main is the entry point for the layersync service. It wires all
// dependencies using samber/do v2, attaches the sync engine to the host
// document, runs the detection and refresh ticks, serves the panel API and
// handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/irebix/LayerVisSync/internal/adapters/alerts"
	"github.com/irebix/LayerVisSync/internal/adapters/clients/acl"
	"github.com/irebix/LayerVisSync/internal/adapters/host/memdoc"
	adapthttp "github.com/irebix/LayerVisSync/internal/adapters/http"
	"github.com/irebix/LayerVisSync/internal/adapters/http/handlers"
	"github.com/irebix/LayerVisSync/internal/adapters/http/middleware"

	"github.com/irebix/LayerVisSync/internal/app/engine"
	"github.com/irebix/LayerVisSync/internal/app/scheduler"
	"github.com/irebix/LayerVisSync/internal/platform/config"
	"github.com/irebix/LayerVisSync/internal/platform/health"
	"github.com/irebix/LayerVisSync/internal/platform/httpclient"
	"github.com/irebix/LayerVisSync/internal/platform/logging"
	"github.com/irebix/LayerVisSync/internal/platform/telemetry"
	"github.com/irebix/LayerVisSync/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second

	// recentAlerts is how many alerts the log sink keeps for inspection.
	recentAlerts = 20
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	out, closer := logging.Output(logging.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}, os.Stderr)
	defer closer.Close()

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, out)

	ctx := context.Background()
	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	doc := do.MustInvoke[*memdoc.Document](injector)
	eng := do.MustInvoke[*engine.Engine](injector)

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(eng)
	if cfg.Alerts.Sink == config.AlertSinkHTTP {
		registry.Register(do.MustInvoke[*acl.AlertClient](injector))
	}

	logger.Info("sync session attached",
		slog.String("session_id", eng.SessionID()),
		slog.String("document_id", doc.ID()),
	)

	// Background work: ticks and the optional fixture watcher.
	bgCtx, stopBackground := context.WithCancel(logging.WithLogger(ctx, logger))
	defer stopBackground()

	var bg sync.WaitGroup
	sched := do.MustInvoke[*scheduler.Scheduler](injector)
	bg.Go(func() {
		if err := sched.Run(bgCtx); err != nil {
			logger.Error("scheduler failed", slog.Any("error", err))
		}
	})
	if cfg.Host.WatchFixture && cfg.Host.Fixture != "" {
		bg.Go(func() {
			if err := doc.Watch(bgCtx, cfg.Host.Fixture); err != nil {
				logger.Error("fixture watcher failed", slog.Any("error", err))
			}
		})
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		stopBackground()
		bg.Wait()
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests, then stop ticking.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	stopBackground()
	bg.Wait()
	doc.Close()

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// loadDocument builds the host document from the configured fixture, or an
// empty document when none is set.
func loadDocument(cfg config.HostConfig) (*memdoc.Document, error) {
	if cfg.Fixture == "" {
		return memdoc.New(), nil
	}
	f, err := memdoc.ReadFixture(cfg.Fixture)
	if err != nil {
		return nil, fmt.Errorf("loading host fixture: %w", err)
	}
	return memdoc.FromFixture(f), nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*memdoc.Document, error) {
		return loadDocument(cfg.Host)
	})

	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, "alert-bridge", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*acl.AlertClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		doc := do.MustInvoke[*memdoc.Document](i)
		return acl.NewAlertClient(client, doc.ID(), logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Alerter, error) {
		if cfg.Alerts.Sink == config.AlertSinkHTTP {
			return do.MustInvoke[*acl.AlertClient](i), nil
		}
		return alerts.NewLogAlerter(logger, recentAlerts), nil
	})

	do.Provide(injector, func(i do.Injector) (*engine.Engine, error) {
		doc := do.MustInvoke[*memdoc.Document](i)
		alerter := do.MustInvoke[ports.Alerter](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return engine.New(doc, alerter, logger, engine.Config{
			TransactionLabel:       cfg.Sync.TransactionLabel,
			MarkerTag:              cfg.Sync.MarkerTag,
			MaxConsecutiveFailures: cfg.Sync.MaxConsecutiveFailures,
		}, metrics), nil
	})

	do.Provide(injector, func(i do.Injector) (*scheduler.Scheduler, error) {
		eng := do.MustInvoke[*engine.Engine](i)
		return scheduler.New(logger,
			scheduler.Task{
				Name:     "detect",
				Interval: cfg.Sync.DetectInterval,
				Run: func(ctx context.Context) error {
					_, err := eng.DetectTick(ctx)
					return err
				},
			},
			scheduler.Task{
				Name:     "refresh",
				Interval: cfg.Sync.RefreshInterval,
				Run:      eng.RefreshTick,
			},
		), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.SyncHandler, error) {
		return handlers.NewSyncHandler(do.MustInvoke[*engine.Engine](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.DocumentHandler, error) {
		return handlers.NewDocumentHandler(do.MustInvoke[*memdoc.Document](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		syncH := do.MustInvoke[*handlers.SyncHandler](i)
		docH := do.MustInvoke[*handlers.DocumentHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		eng := do.MustInvoke[*engine.Engine](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(syncH, docH, healthH,
			middleware.Stack(middleware.StackConfig{
				Logger:    logger,
				Metrics:   metrics,
				SessionID: eng.SessionID(),
				Timeout:   cfg.Server.WriteTimeout,
			}),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
