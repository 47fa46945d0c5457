package logging

import (
	"log/slog"
	"testing"
)

func TestNew_LevelParsing(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		blocked slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"WARN", slog.LevelWarn, slog.LevelInfo},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
		{"", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level)
			if logger == nil {
				t.Fatal("expected logger, got nil")
			}
			if !logger.Enabled(nil, tt.enabled) {
				t.Errorf("level %q: expected %v to be enabled", tt.level, tt.enabled)
			}
			if logger.Enabled(nil, tt.blocked) {
				t.Errorf("level %q: expected %v to be disabled", tt.level, tt.blocked)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	if !logger.Enabled(nil, slog.LevelInfo) {
		t.Error("default logger should log at info level")
	}
}
