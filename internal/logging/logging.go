// Package logging holds the process-wide logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log writes to stderr so reports on stdout stay machine-readable.
var Log = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// SetLogLevel sets the level of Log by name.
func SetLogLevel(level string) error {
	// trace and panic levels are not used
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn", "":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		return fmt.Errorf("bad log level %q (want debug, info, warn or error)", level)
	}
	return nil
}

// SetOutput redirects Log, mainly for tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}
