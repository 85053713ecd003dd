package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/liquid/internal/dynamo"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"warn", "warn", slog.LevelWarn},
		{"error", "ERROR", slog.LevelError},
		{"mixed case Debug", "Debug", slog.LevelDebug},
		{"unknown defaults to info", "verbose", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)
	logger.Log(context.Background(), LevelTrace, "hello")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("expected TRACE label, got %q", buf.String())
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output leaked at info level: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := &Progress{Logger: NewLogger("info", &buf), Every: 10, Total: 25}

	for i := 1; i <= 25; i++ {
		p.OnStep(dynamo.Record{Step: i, Energy: 1, MaxDisplacement: 0.1, Ratio: 0.5})
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 info lines (10, 20, 25), got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "step=25") || !strings.Contains(lines[2], "of=25") {
		t.Errorf("last line missing final step: %q", lines[2])
	}
}

func TestProgress_TraceEveryStep(t *testing.T) {
	var buf bytes.Buffer
	p := &Progress{Logger: NewLogger("trace", &buf), Every: 0, Total: 4}
	for i := 1; i <= 4; i++ {
		p.OnStep(dynamo.Record{Step: i})
	}
	if n := strings.Count(buf.String(), "level=TRACE"); n != 4 {
		t.Errorf("expected 4 trace lines, got %d", n)
	}
}
