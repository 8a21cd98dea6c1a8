// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init installs a global logger at level writing to w.
// When console is set, output is human-readable instead of JSON.
func Init(w io.Writer, level zerolog.Level, console bool) {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()

	if level == zerolog.DebugLevel {
		log.Debug().Msg("Log level set to DEBUG")
	}
}

// InitDefault logs to stderr, human-readable when stderr is a terminal.
func InitDefault(level zerolog.Level) {
	fi, err := os.Stderr.Stat()
	console := err == nil && fi.Mode()&os.ModeCharDevice != 0
	Init(os.Stderr, level, console)
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
