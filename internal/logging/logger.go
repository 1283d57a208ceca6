package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cardmeta/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level string
	// Format selects the console rendering: "console" or "json".
	Format string
	// Output receives console lines. Defaults to os.Stderr.
	Output io.Writer
	// FilePath, when set, additionally appends JSON lines to this file.
	FilePath    string
	Development bool
}

// New constructs a slog logger using the provided options. The returned
// close function releases the log file, if any, and is always non-nil.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var console slog.Handler
	switch format {
	case "json":
		console = newJSONHandler(out, levelVar, addSource)
	case "console":
		console = newPrettyHandler(out, levelVar, addSource)
	default:
		return nil, noopClose, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	path := strings.TrimSpace(opts.FilePath)
	if path == "" {
		return slog.New(console), noopClose, nil
	}

	file, err := openLogFile(path)
	if err != nil {
		return nil, noopClose, err
	}
	handler := newFanoutHandler(console, newJSONHandler(file, levelVar, addSource))
	return slog.New(handler), file.Close, nil
}

// NewFromConfig creates a logger using application config values.
func NewFromConfig(cfg *config.Config, out io.Writer) (*slog.Logger, func() error, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", Output: out})
	}
	return New(Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		Output:   out,
		FilePath: cfg.Logging.File,
	})
}

func noopClose() error { return nil }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
