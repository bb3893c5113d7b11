package calculation

import "github.com/sirupsen/logrus"

// LogrusLogger adapts a logrus entry to Logger
type LogrusLogger struct {
	Entry *logrus.Entry
}

// NewLogrusLogger returns a Logger writing through logrus with the given
// module field
func NewLogrusLogger(module string) LogrusLogger {
	return LogrusLogger{Entry: logrus.WithField("module", module)}
}

func (l LogrusLogger) Debugf(format string, args ...any) { l.Entry.Debugf(format, args...) }
func (l LogrusLogger) Infof(format string, args ...any)  { l.Entry.Infof(format, args...) }
func (l LogrusLogger) Warnf(format string, args ...any)  { l.Entry.Warnf(format, args...) }
func (l LogrusLogger) Errorf(format string, args ...any) { l.Entry.Errorf(format, args...) }
