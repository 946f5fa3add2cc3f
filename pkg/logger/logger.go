package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a new logger with the specified log level
func New(level string) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logger.SetOutput(os.Stdout)

	return logger
}

// WithComponent creates a logger entry tagged with a component name, so that
// log lines from the store, the engine and the elf client can be told apart.
func WithComponent(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
