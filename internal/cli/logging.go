package cli

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger returns the diagnostics logger. It writes to stderr so that
// stdout stays machine-readable.
func newLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out: w,
		Formatter: &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			DisableColors:   true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: level,
	}
}
