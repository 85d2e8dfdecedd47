package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. JSON output so log aggregators
// can index the fields added by the request middleware.
func NewLogger() *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	// Log level could be made configurable via env vars later
	log.SetLevel(logrus.InfoLevel)

	return log
}
