// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTestLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Info().Str("guid", "abc").Msg("demo created")

	out := buf.String()
	if !strings.Contains(out, `"guid":"abc"`) {
		t.Errorf("output %q missing structured field", out)
	}
	if !strings.Contains(out, `"message":"demo created"`) {
		t.Errorf("output %q missing message", out)
	}
}

func TestSlogBridgeForwardsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&slogHandler{logger: NewTestLogger(&buf)})
	logger.Warn("lease expired", "instance_id", "inst-1")

	out := buf.String()
	if !strings.Contains(out, `"instance_id":"inst-1"`) {
		t.Errorf("output %q missing forwarded attr", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("output %q has wrong level", out)
	}
}
