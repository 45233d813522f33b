package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		log      func(l *Logger)
		expected string
	}{
		{"debug suppressed at info", LevelInfo, func(l *Logger) { l.Debug("hidden") }, ""},
		{"verbose suppressed at info", LevelInfo, func(l *Logger) { l.Verbose("hidden") }, ""},
		{"info emitted at info", LevelInfo, func(l *Logger) { l.Info("shown") }, "[INFO] shown\n"},
		{"verbose emitted at verbose", LevelVerbose, func(l *Logger) { l.Verbose("shown") }, "[VERBOSE] shown\n"},
		{"debug emitted at debug", LevelDebug, func(l *Logger) { l.Debug("shown") }, "[DEBUG] shown\n"},
		{"success emitted at info", LevelInfo, func(l *Logger) { l.Success("done") }, "[SUCCESS] done\n"},
		{"info suppressed at warning", LevelWarning, func(l *Logger) { l.Info("hidden") }, ""},
		{"warning suppressed at error", LevelError, func(l *Logger) { l.Warning("hidden") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(tt.level, &buf))
			if buf.String() != tt.expected {
				t.Errorf("got %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestCriticalAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelError, &buf)
	logger.Critical("broken invariant: %s", "detail")
	if !strings.Contains(buf.String(), "[CRITICAL] broken invariant: detail") {
		t.Errorf("critical message missing, got %q", buf.String())
	}
}

func TestRawHasNoTag(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)
	logger.Raw(LevelDebug, "raw line\n")
	if buf.String() != "raw line\n" {
		t.Errorf("raw output altered: %q", buf.String())
	}

	buf.Reset()
	logger = New(LevelInfo, &buf)
	logger.Raw(LevelDebug, "raw line\n")
	if buf.String() != "" {
		t.Errorf("raw output not filtered by level: %q", buf.String())
	}
}
