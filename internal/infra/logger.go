package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the portal logger. Development gets a human-readable
// console writer at debug level; any other environment logs structured JSON
// at info.
func NewLogger(appEnv string) zerolog.Logger {
	if appEnv == "development" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
