package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger writing to stdout. Level falls back to info
// when the configured value does not parse; format "console" switches to the
// human-readable writer, everything else stays JSON.
func New(level, format string) zerolog.Logger {
	lv := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		lv = parsed
	}

	out := zerolog.New(os.Stdout)
	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return out.Level(lv).With().Timestamp().Str("app", "rental-backend").Logger()
}
