package logger

import (
	"context"
	"io"
	"os"

	"github.com/reqroute/reqroute-api/internal/constants"
	"github.com/sirupsen/logrus"
)

// Logger wraps logrus for structured logging with request context
type Logger struct {
	*logrus.Entry
}

// Setup configures the standard logrus logger from the LOG_LEVEL and
// LOG_FORMAT settings.
func Setup(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	logrus.SetOutput(out)

	if format == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithContext creates a logger carrying the request ID and the
// authenticated user, when the context has them.
func WithContext(ctx context.Context) *Logger {
	l := New()
	if ctx == nil {
		return l
	}

	if rid, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok && rid != "" {
		l.Entry = l.Entry.WithField("request_id", rid)
	}
	if uid := ctx.Value(constants.ContextKeyUserID); uid != nil {
		l.Entry = l.Entry.WithField("user_id", uid)
	}

	return l
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithError attaches an error to the logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}
