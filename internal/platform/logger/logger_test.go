package logger_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"momentum/internal/platform/config"
	"momentum/internal/platform/logger"
)

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cfg   config.LogConfig
		level zapcore.Level
	}{
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}, level: zapcore.DebugLevel},
		{name: "json warn", cfg: config.LogConfig{Level: "warn", Format: "json"}, level: zapcore.WarnLevel},
		{name: "bad level falls back", cfg: config.LogConfig{Level: "loud", Format: "console"}, level: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := logger.New(tt.cfg)
			if err != nil {
				t.Fatalf("new logger: %v", err)
			}
			if !l.Core().Enabled(tt.level) {
				t.Fatalf("expected %s to be enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && l.Core().Enabled(tt.level-1) {
				t.Fatalf("expected %s to be disabled", tt.level-1)
			}
		})
	}
}
