package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Info("resolved", slog.Int("year", 1990))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "resolved" {
		t.Errorf("msg = %v, want %q", rec["msg"], "resolved")
	}
	if rec["year"] != float64(1990) {
		t.Errorf("year = %v, want 1990", rec["year"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "text")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestFromContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "text")

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID() = %q, want %q", got, "req-123")
	}

	FromContext(ctx, base).Info("hello")
	if !strings.Contains(buf.String(), "request_id=req-123") {
		t.Errorf("log line %q missing request_id", buf.String())
	}

	buf.Reset()
	FromContext(context.Background(), base).Info("plain")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("log line %q should not carry a request_id", buf.String())
	}
}
