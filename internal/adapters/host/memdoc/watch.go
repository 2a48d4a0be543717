package memdoc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/irebix/LayerVisSync/internal/platform/logging"
)

// Watch applies the fixture at path to d every time the file is written or
// replaced, until ctx is done. The parent directory is watched so editors
// that save through a rename are seen too. Bad fixture contents are logged
// and skipped.
func (d *Document) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fixture watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving fixture path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	logger := logging.FromContext(ctx).With(slog.String("fixture", abs))
	logger.InfoContext(ctx, "watching fixture for native edits")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			d.reload(ctx, abs, logger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "fixture watcher error",
				slog.String("operation", "Document.Watch"),
				slog.Any("error", err),
			)
		}
	}
}

func (d *Document) reload(ctx context.Context, path string, logger *slog.Logger) {
	f, err := ReadFixture(path)
	if err != nil {
		logger.WarnContext(ctx, "skipping unreadable fixture",
			slog.String("operation", "Document.reload"),
			slog.Any("error", err),
		)
		return
	}
	if err := d.Apply(ctx, f); err != nil {
		logger.WarnContext(ctx, "failed to apply fixture",
			slog.String("operation", "Document.reload"),
			slog.Any("error", err),
		)
		return
	}
	logger.InfoContext(ctx, "applied fixture edit")
}
