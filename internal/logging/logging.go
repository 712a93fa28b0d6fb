// Package logging constructs and distributes zerolog loggers for fbxbatch.
//
// All subsystems receive their logger either directly (constructor
// injection) or through a context. The package never keeps global state;
// the CLI layer owns the root logger and decides where it writes.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output destinations accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Config describes how the root logger should be constructed.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Unparseable
	// values fall back to info.
	Level string

	// Format selects "console" (human readable) or "json".
	Format string

	// Output selects the destination: stderr, stdout or file.
	Output string

	// File is the log file path, used when Output is "file".
	File string

	// Caller adds the caller annotation to every event.
	Caller bool
}

// Result holds the constructed logger together with the file handle that
// must be closed when the process exits.
type Result struct {
	Logger   zerolog.Logger
	FilePath string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds the root logger from cfg. When the configured log file cannot
// be opened the logger falls back to stderr; the fallback is visible to the
// caller through the returned Result having an empty FilePath.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	res := Result{}
	var out io.Writer

	switch cfg.Output {
	case OutputFile:
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			out = os.Stderr
		} else {
			res.file = f
			res.FilePath = cfg.File
			out = f
		}
	case OutputStdout:
		out = os.Stdout
	default:
		out = os.Stderr
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logger = logger.Caller()
	}
	res.Logger = logger.Logger()
	return res
}

// ComponentLogger tags a logger with the subsystem name so every event
// carries a "component" field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext stores the logger in ctx for retrieval via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx. When none was stored the
// zerolog default (a disabled logger) is returned, so callers can always
// log against the result.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}
