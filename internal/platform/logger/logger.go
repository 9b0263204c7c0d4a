package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a structured logger writing to w with the given level and format.
// level: "debug", "info", "warn", "error" (default "info").
// format: "text" or "json" (default "text"; the CLIs are run by hand).
func New(level, format string, w io.Writer) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
