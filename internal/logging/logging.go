// Package logging provides the levelled logger used across cinder. Records
// are handled by log/slog and rendered by tint.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a string into a Level. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config configures a Logger.
type Config struct {
	// Level is the minimum level written.
	Level Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix is attached to every record as the "app" attribute.
	Prefix string
	// NoColor disables ANSI colors.
	NoColor bool
	// TimeFormat defaults to time.Kitchen. "-" omits the time.
	TimeFormat string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Prefix: "cinder",
	}
}

// Logger writes levelled, structured records. Arguments after the message
// are slog key/value pairs. A nil *Logger discards everything.
type Logger struct {
	sl       *slog.Logger
	level    *slog.LevelVar
	disabled *atomic.Bool
}

// New creates a Logger.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := new(slog.LevelVar)
	level.Set(cfg.Level.slog())

	opts := &tint.Options{
		Level:      level,
		TimeFormat: cfg.TimeFormat,
		NoColor:    cfg.NoColor,
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = time.Kitchen
	}
	if cfg.TimeFormat == "-" {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
	}

	sl := slog.New(tint.NewHandler(cfg.Output, opts))
	if cfg.Prefix != "" {
		sl = sl.With("app", cfg.Prefix)
	}
	return &Logger{sl: sl, level: level, disabled: new(atomic.Bool)}
}

// Null returns a Logger that discards all output.
func Null() *Logger {
	l := New(Config{Output: io.Discard})
	l.Disable()
	return l
}

// Slog exposes the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.sl
}

// WithField returns a logger that adds key=value to every record.
func (l *Logger) WithField(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{sl: l.sl.With(key, value), level: l.level, disabled: l.disabled}
}

// WithFields returns a logger that adds every entry of fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	args := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{sl: l.sl.With(args...), level: l.level, disabled: l.disabled}
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum level. Derived loggers share it.
func (l *Logger) SetLevel(level Level) {
	if l != nil {
		l.level.Set(level.slog())
	}
}

// Enabled reports whether a record at level would be written.
func (l *Logger) Enabled(level Level) bool {
	if l == nil || l.disabled.Load() {
		return false
	}
	return l.sl.Enabled(context.Background(), level.slog())
}

// Disable disables all logging.
func (l *Logger) Disable() {
	if l != nil {
		l.disabled.Store(true)
	}
}

// Enable enables logging.
func (l *Logger) Enable() {
	if l != nil {
		l.disabled.Store(false)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) { l.log(LevelInfo, msg, args) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) { l.log(LevelWarn, msg, args) }

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }

func (l *Logger) log(level Level, msg string, args []any) {
	if !l.Enabled(level) {
		return
	}
	l.sl.Log(context.Background(), level.slog(), msg, args...)
}
