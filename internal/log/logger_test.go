package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug", "TEXT", false).Level)
	assert.Equal(t, logrus.WarnLevel, NewLogger("WARN", "TEXT", false).Level)
	assert.Equal(t, logrus.InfoLevel, NewLogger("bogus", "TEXT", false).Level, "unknown levels fall back to info")
}

func TestNewLoggerFormats(t *testing.T) {
	assert.IsType(t, &logrus.JSONFormatter{}, NewLogger("info", "json", false).Formatter)
	assert.IsType(t, &logrus.TextFormatter{}, NewLogger("info", "TEXT", false).Formatter)
	assert.IsType(t, &logrus.TextFormatter{}, NewLogger("info", "", false).Formatter)
}
