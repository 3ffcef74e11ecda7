package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logger used across the services. Level and format
// come from the config file ("DEBUG"/"INFO"/..., "TEXT"/"JSON").
func NewLogger(level, format string, disableTimestamp bool) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr

	switch strings.ToUpper(format) {
	case "JSON":
		logger.Formatter = &logrus.JSONFormatter{
			DisableTimestamp: disableTimestamp,
		}
	default:
		logger.Formatter = &logrus.TextFormatter{
			DisableTimestamp: disableTimestamp,
		}
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.Level = parsed
	return logger
}
