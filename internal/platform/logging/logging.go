// Package logging builds the service's slog logger and carries request
// scoped loggers through contexts.
//
//	w, closer := logging.Output(logging.FileOptions{Path: cfg.Log.File}, os.Stderr)
//	defer closer.Close()
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, w)
//
// Handlers and services log through logging.FromContext(ctx), which returns
// the logger the HTTP middleware stored (request, correlation and session
// ids attached) or slog.Default. Error logs name the operation, the entity
// and the full error chain:
//
//	logger.ErrorContext(ctx, "propagation transaction failed",
//	    slog.String("operation", "Engine.DetectTick"),
//	    slog.Int64("layer_id", int64(id)),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// New returns a logger writing to w. level is any slog level name ("debug",
// "INFO", "warn+2"); an unparsable level means info. format "text" selects
// the text handler, anything else JSON. Debug loggers add source locations.
// Credential-looking attributes are masked in every format.
func New(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactor(),
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
