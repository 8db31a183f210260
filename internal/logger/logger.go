// Package logger provides leveled logging with debug, info, warn, and error
// levels. It wraps the standard log package with level filtering and an
// optional log file destination; errors always reach stderr so a quiet scan
// still surfaces failures.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs are voluminous per-frame detail, disabled by default.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual human review.
	WarnLevel
	// ErrorLevel logs are high-priority failures.
	ErrorLevel
)

// Logger provides leveled logging
type Logger struct {
	level  Level
	logger *log.Logger
	errlog *log.Logger // errors duplicated here when the main sink is a file
}

var defaultLogger *Logger

// parseLevel maps a level name to a Level, defaulting to InfoLevel.
func parseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Init initializes the default logger. When path is non-empty, log output is
// appended to that file and error-level messages are additionally written to
// stderr; otherwise everything goes to stderr.
func Init(level string, path string) error {
	var out io.Writer = os.Stderr
	var errlog *log.Logger

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		out = f
		errlog = log.New(os.Stderr, "", 0)
	}

	defaultLogger = &Logger{
		level:  parseLevel(level),
		logger: log.New(out, "", log.LstdFlags|log.Lmicroseconds),
		errlog: errlog,
	}
	return nil
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	if defaultLogger != nil && defaultLogger.level <= DebugLevel {
		msg := fmt.Sprintf("[DEBUG] "+format, args...)
		_ = defaultLogger.logger.Output(2, msg)
	}
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	if defaultLogger != nil && defaultLogger.level <= InfoLevel {
		msg := fmt.Sprintf("[INFO] "+format, args...)
		_ = defaultLogger.logger.Output(2, msg)
	}
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	if defaultLogger != nil && defaultLogger.level <= WarnLevel {
		msg := fmt.Sprintf("[WARN] "+format, args...)
		_ = defaultLogger.logger.Output(2, msg)
	}
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	if defaultLogger == nil {
		return
	}
	msg := fmt.Sprintf("[ERROR] "+format, args...)
	_ = defaultLogger.logger.Output(2, msg)
	if defaultLogger.errlog != nil {
		_ = defaultLogger.errlog.Output(2, msg)
	}
}

// Fatal logs a message at ErrorLevel and exits
func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf("[FATAL] "+format, args...)
	if defaultLogger != nil {
		_ = defaultLogger.logger.Output(2, msg)
		if defaultLogger.errlog != nil {
			_ = defaultLogger.errlog.Output(2, msg)
		}
	} else {
		log.Print(msg)
	}
	os.Exit(1)
}
