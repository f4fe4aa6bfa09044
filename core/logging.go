package core

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging points the global zerolog logger at out: a console writer in
// dev, JSON lines in prod. debugLogs wins over logLevel.
func SetupLogging(config Config, out io.Writer) zerolog.Level {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || config.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	if config.DebugLogs {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.IsDev() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "dynsite").Logger()

	return level
}
