package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel selects how much of the core's activity reaches the session log.
type LogLevel int

const (
	// LogLevelOff disables the session log entirely.
	LogLevelOff LogLevel = iota
	// LogLevelError records operational failures only.
	LogLevelError
	// LogLevelDebug additionally records session transitions, queue
	// activity, and allowance reads.
	LogLevelDebug
)

// ParseLogLevel maps a configuration string to a LogLevel. Unknown values
// fall back to error so a typo never silences failure reporting.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

// Logger appends timestamped lines to the session log file. It satisfies the
// LogWriter interfaces the wallet manager, transaction queue, and allowance
// manager consume. Embedding applications that bring their own logging can
// pass NullLogger and pay nothing.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	out   *os.File
}

// NewLogger opens the session log at path, creating parent directories as
// needed. A level of off or an empty path yields a discarding logger without
// touching the filesystem.
func NewLogger(level LogLevel, path string) (*Logger, error) {
	l := &Logger{level: level}
	if level == LogLevelOff || path == "" {
		return l, nil
	}

	resolved, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- path comes from the user's own configuration
	f, err := os.OpenFile(resolved, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	l.out = f
	return l, nil
}

// NullLogger returns a logger that discards everything.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}

// Debug records session and queue activity.
func (l *Logger) Debug(format string, args ...any) {
	l.write(LogLevelDebug, format, args)
}

// Error records an operational failure.
func (l *Logger) Error(format string, args ...any) {
	l.write(LogLevelError, format, args)
}

// Close releases the underlying file. Safe on a discarding logger and safe
// to call twice.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil {
		return nil
	}
	err := l.out.Close()
	l.out = nil
	return err
}

func (l *Logger) write(level LogLevel, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil || level > l.level {
		return
	}

	stamp := time.Now().Format(time.RFC3339)
	tag := strings.ToUpper(level.String())
	_, _ = fmt.Fprintf(l.out, "%s %-5s %s\n", stamp, tag, fmt.Sprintf(format, args...))
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}
