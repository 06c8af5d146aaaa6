// Package logger holds the process-wide zerolog logger of the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log = zerolog.Nop()

func Log() *zerolog.Logger {
	return &log
}

// SetConsoleWriter points the logger at a human readable writer on out and
// filters below level.
func SetConsoleWriter(out io.Writer, level string, noColor bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}

	log = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.NoColor = noColor
		w.FormatLevel = formatLevel(noColor)
		w.TimeFormat = "15:04:05.000"
	})).Level(lvl).With().Timestamp().Logger()

	return nil
}

// SetStderr is SetConsoleWriter on stderr with colours.
func SetStderr(level string) error {
	return SetConsoleWriter(os.Stderr, level, false)
}

// Fatal logs err and exits the process.
func Fatal(err error, msg string) {
	log.Fatal().Err(err).Msg(msg)
}

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35
	colorBold    = 1
)

func colorize(s string, c int, disabled bool) string {
	if disabled {
		return s
	}

	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", c, s)
}

func formatLevel(noColor bool) zerolog.Formatter {
	return func(i interface{}) string {
		level, _ := i.(string)

		switch level {
		case zerolog.LevelTraceValue:
			return colorize("TRC", colorMagenta, noColor)
		case zerolog.LevelDebugValue:
			return colorize("DBG", colorYellow, noColor)
		case zerolog.LevelInfoValue:
			return colorize("INF", colorGreen, noColor)
		case zerolog.LevelWarnValue:
			return colorize("WRN", colorRed, noColor)
		case zerolog.LevelErrorValue:
			return colorize(colorize("ERR", colorRed, noColor), colorBold, noColor)
		case zerolog.LevelFatalValue:
			return colorize(colorize("FTL", colorRed, noColor), colorBold, noColor)
		}

		return colorize("???", colorBold, noColor)
	}
}
