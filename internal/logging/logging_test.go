package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
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
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{" info ", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"verbose", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseLevel('%s') = %v, %v; expected %v, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf, Prefix: "test"})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn %d", 1)
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected debug and info to be filtered, got %q", output)
	}
	if !strings.Contains(output, "[WARN] test: warn 1") {
		t.Errorf("expected formatted warning, got %q", output)
	}
	if !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected error line, got %q", output)
	}
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.WithComponent("curses").WithField("terminal", "abc").Info("ready")

	if !strings.Contains(buf.String(), "ready {component=curses, terminal=abc}") {
		t.Errorf("expected sorted fields, got %q", buf.String())
	}
}

func TestLogger_ChildrenShareSink(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: LevelError, Output: &buf})
	child := root.WithComponent("terminal")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	root.SetLevel(LevelInfo)
	child.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected level change on root to reach child, got %q", buf.String())
	}
	if child.Level() != LevelInfo {
		t.Errorf("expected child level INFO, got %v", child.Level())
	}

	var other bytes.Buffer
	child.SetOutput(&other)
	root.Error("moved")
	if !strings.Contains(other.String(), "moved") {
		t.Errorf("expected output change on child to reach root, got %q", other.String())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.Disable()
	logger.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}

	logger.Enable()
	logger.Error("something")
	if buf.Len() == 0 {
		t.Error("expected output after enable")
	}
}

func TestNopAndNil(t *testing.T) {
	Nop().Error("discarded")

	var l *Logger
	l.Error("nil logger must not panic")
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(New(Config{Level: LevelDebug, Output: &buf}))
	Default().Debug("via default")

	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("expected replaced default logger to be used, got %q", buf.String())
	}
}
