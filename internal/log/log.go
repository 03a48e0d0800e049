// Package log builds the logrus loggers used by the command-line tools.
// Library packages under dsp/ never log.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv forces debug level when set to a true value.
const DebugEnv = "BIQUAD_DEBUG"

// New returns a text logger writing to w at the given level name
// ("debug", "info", "warn", ...). An empty or unknown level falls back to
// info; the parse error is returned so callers can report it.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var parseErr error
	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			parseErr = err
		} else {
			lvl = parsed
		}
	}

	if debug, err := strconv.ParseBool(os.Getenv(DebugEnv)); err == nil && debug {
		lvl = logrus.DebugLevel
	}

	l.SetLevel(lvl)
	return l, parseErr
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
