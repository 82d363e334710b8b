// Package logging configures the process wide zerolog logger.
//
// Messages keep the "[MODULE]: text" prefix used across the code base, with the
// details carried as structured fields:
//
//	logging.Info().Str("key", key).Msg("[COUNTRIES]: refresh complete")
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration
type Config struct {
	Level  string    // trace, debug, info, warn, error (default: info)
	Format string    // json or console (default: json)
	Output io.Writer // default: os.Stderr
}

var mu sync.Mutex

// Init configures the global logger. It is safe to call more than once.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// parseLevel converts a level name to a zerolog level, defaulting to info
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Debug starts a debug level message
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info starts an info level message
func Info() *zerolog.Event {
	return log.Info()
}

// Warn starts a warning level message
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error starts an error level message
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal starts a fatal message; the process exits after it is sent
func Fatal() *zerolog.Event {
	return log.Fatal()
}
