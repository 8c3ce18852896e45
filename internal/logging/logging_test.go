package logging

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	return New(Config{Level: level, Output: buf, Prefix: "test", NoColor: true, TimeFormat: "-"})
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelInfo)

	l.Debug("hidden")
	l.Info("shown", "file", "a.c")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=a.c") || !strings.Contains(out, "app=test") {
		t.Errorf("expected message with attributes, got %q", out)
	}

	buf.Reset()
	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("expected debug record after SetLevel, got %q", buf.String())
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug).WithComponent("indent").WithFields(map[string]any{"line": 3})

	l.Warn("search limit reached")
	out := buf.String()
	for _, want := range []string{"component=indent", "line=3", "search limit reached"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestLoggerDisable(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)
	child := l.WithField("k", "v")

	l.Disable()
	child.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}

	l.Enable()
	child.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected output after Enable, got %q", buf.String())
	}
}

func TestNullAndNilLogger(t *testing.T) {
	Null().Error("nothing")

	var l *Logger
	l.Info("nil logger is a no-op")
	if l.Enabled(LevelError) {
		t.Error("nil logger should not be enabled")
	}
	if l.WithComponent("x") != nil {
		t.Error("expected nil from nil logger")
	}
}
