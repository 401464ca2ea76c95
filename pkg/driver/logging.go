package driver

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ParseLogLevel accepts trace, debug, info, warn, error or disabled.
func ParseLogLevel(level string) (zerolog.Level, error) {
	switch level {
	case zerolog.LevelTraceValue, zerolog.LevelDebugValue, zerolog.LevelInfoValue,
		zerolog.LevelWarnValue, zerolog.LevelErrorValue, "disabled":
		return zerolog.ParseLevel(level)
	default:
		return zerolog.NoLevel, fmt.Errorf("log_level must be one of trace, debug, info, warn, error, disabled (got %q)", level)
	}
}

// NewLogger builds the session logger writing to w.
func NewLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	var out io.Writer
	switch format {
	case LogFormatJSON:
		out = w
	case LogFormatConsole, "":
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), fmt.Errorf("log_format must be %q or %q (got %q)", LogFormatConsole, LogFormatJSON, format)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
