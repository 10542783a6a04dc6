// Package logging provides a small leveled logger for the CLI. The dialect
// packages themselves never log; error propagation is their only channel.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents logging verbosity.
type Level int

const (
	// LevelError only logs errors
	LevelError Level = iota
	// LevelWarn logs warnings and errors
	LevelWarn
	// LevelInfo logs info, warnings, and errors (default)
	LevelInfo
	// LevelDebug logs everything
	LevelDebug
)

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelInfo, fmt.Errorf("unknown verbosity level: %s (valid: debug, info, warn, error)", s)
	}
}

// String returns the level name used in log lines.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

type logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
}

var std = &logger{level: LevelInfo, output: os.Stderr}

// SetLevel sets the global log level.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// SetOutput sets the destination for log lines.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.output = w
}

// Debug logs a debug message.
func Debug(format string, args ...any) { std.log(LevelDebug, format, args...) }

// Info logs an info message.
func Info(format string, args ...any) { std.log(LevelInfo, format, args...) }

// Warn logs a warning message.
func Warn(format string, args ...any) { std.log(LevelWarn, format, args...) }

// Error logs an error message.
func Error(format string, args ...any) { std.log(LevelError, format, args...) }

func (l *logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level > l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(l.output, "%s [%s] %s", time.Now().Format("2006-01-02 15:04:05"), level, msg)
}
