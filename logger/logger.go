package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	c "boothbuzz-admin/context"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

const CorrelationId = "correlation_id"

var newlines = regexp.MustCompile(`(\n)|(\r\n)`)

func init() {
	logger = logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel parses a logrus level name; unknown names leave the level unchanged.
func SetLevel(level string) {
	if l, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(l)
	}
}

func entry(ctx context.Context) *logrus.Entry {
	return logger.WithField(CorrelationId, c.GetContextValue(ctx, c.ContextKeyCorrelationID))
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Fatalf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Infof(format, args...)
}

func Info(ctx context.Context, msg string) {
	entry(ctx).Info(msg)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Debug(escapeString(format, args...))
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	entry(ctx).Error(escapeString(format, args...))
}

// ErrorWithFields logs an error line with structured diagnostic fields attached.
func ErrorWithFields(ctx context.Context, fields map[string]interface{}, msg string) {
	entry(ctx).WithFields(logrus.Fields(fields)).Error(escapeString("%s", msg))
}

func LogExecutionTime(ctx context.Context, start time.Time, msg string) {
	entry(ctx).WithField("elapsed_ms", time.Since(start).Milliseconds()).Infof("%s took %s", msg, time.Since(start))
}

func escapeString(format string, args ...interface{}) string {
	return newlines.ReplaceAllString(fmt.Sprintf(format, args...), "\\n ")
}
