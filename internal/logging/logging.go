// Package logging builds the zerolog loggers used across the CLI.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Defaults used when the config leaves logging unset.
const (
	DefaultLevel  = "warn"
	DefaultFormat = "console"
)

// New creates a logger writing to w with the given level and format.
// Format "json" emits one JSON object per line; anything else is a console
// writer. Unknown levels fall back to DefaultLevel.
func New(level, format string, w io.Writer) zerolog.Logger {
	output := w
	if format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    format == "plain",
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
