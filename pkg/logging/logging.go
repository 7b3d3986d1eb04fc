// Package logging configures the process-wide diagnostic logger.
//
// Diagnostics go to stderr and are separate from both the transcript
// file and the console status lines, so raising the level never changes
// what lands in the output file.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel overrides the diagnostic log level. Recognized values:
// trace, debug, info, warn, error, off.
const EnvLogLevel = "QAGATE_LOG_LEVEL"

var configureOnce sync.Once

// Configure sets up the global logger on stderr. The default level is
// warn; verbose lowers it to debug. EnvLogLevel wins over both.
func Configure(verbose bool) {
	configureOnce.Do(func() {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			level = lvl
		}

		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	})
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "off", "disabled", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.NoLevel, false
	}
}
