// Package logging provides the structured logger used across the service.
package logging

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured key/value pairs for a single log entry.
type Fields map[string]interface{}

// LoggerV2 is a named structured logger.
type LoggerV2 struct {
	name string
	zl   *zap.Logger
}

var (
	baseOnce sync.Once
	base     *zap.Logger
)

func baseLogger() *zap.Logger {
	baseOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(os.Getenv("LOG_LEVEL")))
		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		base = l
	})
	return base
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// NewLoggerV2 creates a logger named after the component that owns it.
func NewLoggerV2(name string) *LoggerV2 {
	return &LoggerV2{
		name: name,
		zl:   baseLogger().Named(name),
	}
}

// NewLoggerFromZap wraps an existing zap logger. Used by tests to observe output.
func NewLoggerFromZap(name string, zl *zap.Logger) *LoggerV2 {
	return &LoggerV2{name: name, zl: zl.Named(name)}
}

// Name returns the component name.
func (l *LoggerV2) Name() string {
	return l.name
}

// Debug logs at debug level.
func (l *LoggerV2) Debug(msg string, fields ...Fields) {
	l.zl.Debug(msg, toZap(fields)...)
}

// Info logs at info level.
func (l *LoggerV2) Info(msg string, fields ...Fields) {
	l.zl.Info(msg, toZap(fields)...)
}

// Warn logs at warn level.
func (l *LoggerV2) Warn(msg string, fields ...Fields) {
	l.zl.Warn(msg, toZap(fields)...)
}

// Error logs at error level.
func (l *LoggerV2) Error(msg string, fields ...Fields) {
	l.zl.Error(msg, toZap(fields)...)
}

// Fatal logs and exits the process.
func (l *LoggerV2) Fatal(msg string, fields ...Fields) {
	l.zl.Fatal(msg, toZap(fields)...)
}

// With returns a child logger that always carries the given fields.
func (l *LoggerV2) With(fields Fields) *LoggerV2 {
	return &LoggerV2{name: l.name, zl: l.zl.With(toZap([]Fields{fields})...)}
}

// Sync flushes buffered entries.
func (l *LoggerV2) Sync() error {
	return l.zl.Sync()
}

func toZap(fields []Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields[0]))
	for _, f := range fields {
		keys := make([]string, 0, len(f))
		for k := range f {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, zap.Any(k, f[k]))
		}
	}
	return out
}

// Info logs through the process-wide logger.
func Info(msg string, fields ...Fields) {
	baseLogger().Info(msg, toZap(fields)...)
}

// Error logs through the process-wide logger.
func Error(msg string, fields ...Fields) {
	baseLogger().Error(msg, toZap(fields)...)
}

// Infof logs a formatted message through the process-wide logger.
func Infof(format string, args ...interface{}) {
	baseLogger().Info(fmt.Sprintf(format, args...))
}

// Sync flushes the process-wide logger.
func Sync() {
	_ = baseLogger().Sync()
}
