package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevels lists the accepted log level names, most verbose first
var LogLevels = []string{"trace", "debug", "info", "warn", "error", "off"}

var logLevels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"off":   logrus.PanicLevel,
}

// ConfigureLogging sets the global logrus level and format. A nil out keeps
// the current output.
func ConfigureLogging(level string, out io.Writer) error {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return fmt.Errorf("log level must be one of %s, got %q", strings.Join(LogLevels, ", "), level)
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	logrus.SetLevel(lvl)
	if out != nil {
		logrus.SetOutput(out)
	}
	return nil
}
