// Package logger provides per-module structured loggers backed by a shared logrus root logger.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields are structured key/value pairs attached to a log line.
type Fields map[string]any

type Logger struct {
	logger *logrus.Logger
	module string
}

var root = logrus.New()

// New returns a logger for the named module. All module loggers share one logrus instance, configured through
// SetLevel and SetOutput.
func New(module string) *Logger {
	return &Logger{root, module}
}

func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}

func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

func (l *Logger) entry(fields Fields) *logrus.Entry {
	return l.logger.WithFields(logrus.Fields(fields)).WithField("module", l.module)
}

func (l *Logger) Trace(msg string, fields Fields) {
	l.entry(fields).Trace(msg)
}

func (l *Logger) Debug(msg string, fields Fields) {
	l.entry(fields).Debug(msg)
}

func (l *Logger) Info(msg string, fields Fields) {
	l.entry(fields).Info(msg)
}

func (l *Logger) Warn(msg string, fields Fields) {
	l.entry(fields).Warn(msg)
}

func (l *Logger) Error(msg string, fields Fields) {
	l.entry(fields).Error(msg)
}

func (l *Logger) Critical(msg string, fields Fields) {
	l.entry(fields).Error("CRITICAL: " + msg)
}

// Panic logs msg at panic level and then panics with it. Reserved for corrupted process state.
func (l *Logger) Panic(msg string, fields Fields) {
	l.entry(fields).Panic(msg)
}
