package logging

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures rotation for file output.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Output returns the writer logs should go to: fallback when opts.Path is
// empty, otherwise a size-rotated file. The returned closer must be called
// on shutdown; for fallback it is a no-op.
func Output(opts FileOptions, fallback io.Writer) (io.Writer, io.Closer) {
	if opts.Path == "" {
		return fallback, nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	return lj, lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
