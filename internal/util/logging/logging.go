// Package logging holds the process-wide structured logger. It starts as a
// no-op so library code and tests can log without setup; binaries call Init
// once at startup.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init builds the production JSON logger at the given level name and installs
// it globally. An empty level means info.
func Init(level string) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", level, err)
		}
		lvl = parsed
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// Sync flushes buffered entries. Call it on shutdown.
func Sync() {
	_ = get().Sync()
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) { get().Debug(msg, fields...) }

// Info logs at info level.
func Info(msg string, fields ...zap.Field) { get().Info(msg, fields...) }

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) { get().Warn(msg, fields...) }

// Error logs at error level.
func Error(msg string, fields ...zap.Field) { get().Error(msg, fields...) }

// Fatal logs at fatal level and exits.
func Fatal(msg string, fields ...zap.Field) { get().Fatal(msg, fields...) }

func get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
