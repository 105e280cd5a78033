package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestGet_ChainableSingleton はGetが返すロガーに直接レベルメソッドを
// チェーンできること、および毎回同じシングルトンが返ることを検証します。
func TestGet_ChainableSingleton(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf})

	// Get()の戻り値に直接チェーンできること
	Get().Error().Err(errors.New("boom")).Msg("operation failed")

	out := buf.String()
	if !strings.Contains(out, "operation failed") {
		t.Errorf("expected log output to contain the message, got %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("expected log output to contain the error, got %q", out)
	}

	if Get() != Get() {
		t.Error("expected Get to return the same singleton instance")
	}

	// 二回目以降のInitは無視される
	var other bytes.Buffer
	Init(Options{Level: "error", Output: &other})
	Get().Error().Msg("second init must not redirect output")
	if other.Len() != 0 {
		t.Errorf("expected second Init to be a no-op, got output %q", other.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"  INFO ", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
