// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/scrobblr/internal/config"
)

const appName = "scrobblr"

// Options controls where and how the root logger writes.
type Options struct {
	Level string
	JSON  bool
	// File, when set, receives the logs instead of Output.
	File   string
	Output io.Writer
}

// FromConfig converts the [log] section to Options.
func FromConfig(cfg config.LogConfig) Options {
	return Options{Level: cfg.Level, JSON: cfg.JSON, File: cfg.File}
}

// New creates the root logger. The returned closer releases the log file,
// if any.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		if opts.Level != "" {
			return nil, nil, fmt.Errorf("unknown log level %q", opts.Level)
		}
		level = hclog.Info
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       appName,
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
		Color:      hclog.ColorOff,
	})
	return logger, closer, nil
}

// DefaultFile returns the log file used when the terminal is taken by the
// dashboard.
func DefaultFile() (string, error) {
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
