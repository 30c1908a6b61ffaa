package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Packages that log during tests run without main calling Init.
func init() {
	Init("info", "text")
}

// Init configures the global logger. Unknown levels fall back to info,
// and any format other than "json" uses the text formatter.
func Init(level, format string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log = logger.WithFields(logrus.Fields{"service": "lifeshare"})
}

// SetOutput redirects the global logger, e.g. to io.Discard in tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}
