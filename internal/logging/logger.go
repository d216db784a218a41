package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Setup builds a logger writing to w.
//   - level: trace, debug, info, warn, error (unknown values fall back to info)
//   - format: "pretty" for console output, anything else for JSON lines
//
// A nil w discards everything.
func Setup(level, format string, w io.Writer) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}
	var writer io.Writer = w
	if strings.EqualFold(strings.TrimSpace(format), FormatPretty) {
		writer = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    !isColorWriter(w),
		}
	}
	return zerolog.New(writer).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether level names a known zerolog level.
func ValidLevel(level string) bool {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	return err == nil && lvl != zerolog.NoLevel
}

func isColorWriter(w io.Writer) bool {
	return w == os.Stderr || w == os.Stdout
}
