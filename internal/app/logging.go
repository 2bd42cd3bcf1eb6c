package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

// Log levels, least to most severe.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the level name used in log lines.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel maps a configuration string to a level. Unknown
// strings mean info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger writes leveled, structured log lines. The terminal belongs to
// the UI, so logs go to a file or nowhere, never to the screen.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	output   io.Writer
	fields   map[string]any
	disabled bool
}

// NewLogger creates a logger writing to out at the given minimum
// level. A nil writer discards everything.
func NewLogger(level LogLevel, out io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{level: level, output: out, fields: make(map[string]any)}
}

// OpenLogFile creates a logger appending to the file at path. The
// caller closes the returned closer on shutdown.
func OpenLogFile(path string, level LogLevel) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return NewLogger(level, f), f, nil
}

// WithField returns a logger that appends key=value to every line.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{level: l.level, output: l.output, fields: fields, disabled: l.disabled}
}

// WithComponent returns a logger tagged with the component name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum level written.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disabled || level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] gdbtui: ")
	b.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
		}
		b.WriteString("}")
	}
	b.WriteByte('\n')

	_, _ = l.output.Write([]byte(b.String()))
}

// NullLogger discards all output.
var NullLogger = &Logger{disabled: true}

var (
	appLogger     *Logger
	appLoggerOnce sync.Once
)

// GetLogger returns the process-wide logger, NullLogger until
// SetLogger installs one.
func GetLogger() *Logger {
	appLoggerOnce.Do(func() {
		if appLogger == nil {
			appLogger = NullLogger
		}
	})
	return appLogger
}

// SetLogger installs the process-wide logger. Call it early, before
// New.
func SetLogger(l *Logger) {
	appLogger = l
}
