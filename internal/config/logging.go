package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// logTimeFormat is the timestamp layout of every plain log line.
const logTimeFormat = "2006-01-02 15:04:05.000"

// ParseLogLevel parses a log level string. Unknown values map to error.
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

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelDebug:
		return "debug"
	case LogLevelError:
		return "error"
	default:
		return "error"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	if l == LogLevelDebug {
		return slog.LevelDebug
	}
	return slog.LevelError
}

// Logger writes leveled diagnostics to an append-only file and, when set,
// a mirror writer. A Logger with neither discards everything.
type Logger struct {
	mu         sync.Mutex
	level      LogLevel
	file       *os.File
	mirror     io.Writer
	filePath   string
	structured *slog.Logger
}

// NewLogger opens filePath for appending. With LogLevelOff or an empty path no
// file is created.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	logger := &Logger{
		level:    level,
		filePath: filePath,
	}

	if level == LogLevelOff || filePath == "" {
		return logger, nil
	}

	filePath, err := expandHome(filePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	logger.file = f
	logger.filePath = filePath
	logger.structured = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level.slogLevel()}))

	return logger, nil
}

// NewStructuredLogger is NewLogger with JSON output for Structured.
func NewStructuredLogger(level LogLevel, filePath string) (*Logger, error) {
	logger, err := NewLogger(level, filePath)
	if err != nil {
		return nil, err
	}
	logger.SetJSONOutput(true)
	return logger, nil
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.structured = nil
	return err
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetMirror also writes every plain log line to w. Verbose mode points it at
// stderr. A nil w stops mirroring.
func (l *Logger) SetMirror(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mirror = w
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Path returns the resolved log file path.
func (l *Logger) Path() string {
	return l.filePath
}

// SetJSONOutput switches Structured between JSON and key=value text.
func (l *Logger) SetJSONOutput(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}
	opts := &slog.HandlerOptions{Level: l.level.slogLevel()}
	if enabled {
		l.structured = slog.New(slog.NewJSONHandler(l.file, opts))
	} else {
		l.structured = slog.New(slog.NewTextHandler(l.file, opts))
	}
}

// Structured returns a slog.Logger writing to the same file, or nil when
// the logger has no file.
func (l *Logger) Structured() *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.structured
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LogLevelError, fmt.Sprintf(format, args...))
}

// DebugAttrs logs msg followed by key=value attributes at debug level.
func (l *Logger) DebugAttrs(msg string, attrs ...slog.Attr) {
	l.log(LogLevelDebug, msg+formatAttrs(attrs))
}

// ErrorAttrs logs msg followed by key=value attributes at error level.
func (l *Logger) ErrorAttrs(msg string, attrs ...slog.Attr) {
	l.log(LogLevelError, msg+formatAttrs(attrs))
}

// Writer returns an io.Writer that writes to the logger at the specified level.
func (l *Logger) Writer(level LogLevel) io.Writer {
	return &logWriter{logger: l, level: level}
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(_ context.Context, level LogLevel) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return (l.file != nil || l.mirror != nil) && l.level != LogLevelOff && level <= l.level
}

func (l *Logger) log(level LogLevel, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level == LogLevelOff || level > l.level || (l.file == nil && l.mirror == nil) {
		return
	}

	line := fmt.Sprintf("%s [%s] %s\n",
		time.Now().Format(logTimeFormat), strings.ToUpper(level.String()), msg)
	if l.file != nil {
		_, _ = io.WriteString(l.file, line)
	}
	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, line)
	}
}

func formatAttrs(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
	}
	return b.String()
}

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

type logWriter struct {
	logger *Logger
	level  LogLevel
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.logger.log(w.level, strings.TrimSpace(string(p)))
	return len(p), nil
}
