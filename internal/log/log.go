// SPDX-License-Identifier: Unlicense OR MIT

// Package log builds the loggers used by the splitmenu packages and
// reports programming errors.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the level of loggers created by New.
const EnvLevel = "SPLITMENU_LOG_LEVEL"

// New returns a console logger writing to w at the level named by
// the SPLITMENU_LOG_LEVEL environment variable, or info level.
func New(w io.Writer) zerolog.Logger {
	level, ok := ParseLevel(os.Getenv(EnvLevel))
	if !ok {
		level = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty
// names report false.
func ParseLevel(raw string) (zerolog.Level, bool) {
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
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// Assert reports msg as a programming error when cond is false, and
// returns cond. Callers use the result to turn the offending call into
// a no-op:
//
//	if !log.Assert(l, h.arb != nil, "gesture was destroyed") {
//		return false, ErrDestroyed
//	}
func Assert(l *zerolog.Logger, cond bool, msg string) bool {
	if !cond {
		l.Error().Bool("assert", true).Msg(msg)
	}
	return cond
}
