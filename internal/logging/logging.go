// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// LevelFromEnv resolves the level when no flag or config sets it.
// DEBUG=1|true|yes|on wins over LOG_LEVEL; the default is info.
func LevelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true", "yes", "on":
		return zerolog.DebugLevel
	}
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// Options configures New.
type Options struct {
	// Level is a level name; empty means LevelFromEnv.
	Level string
	// JSON switches from console output to one JSON object per line.
	JSON bool
}

// New returns a logger writing to w (stderr when nil).
func New(w io.Writer, opts Options) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := LevelFromEnv()
	if opts.Level != "" {
		level = ParseLevel(opts.Level)
	}
	if !opts.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// WithRunID tags every event of l with a fresh run id.
func WithRunID(l zerolog.Logger) (zerolog.Logger, string) {
	id := uuid.NewString()
	return l.With().Str("run_id", id).Logger(), id
}
