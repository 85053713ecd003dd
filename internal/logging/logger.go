// Package logging provides the leveled logger used by the CLI and a progress
// observer that reports thermalization records through it.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/san-kum/liquid/internal/dynamo"
)

// LevelTrace is below Debug and logs every single trial step.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps "info", "debug", "trace", "warn" and "error" (case-insensitive)
// to a slog.Level. Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Progress logs every record at trace level and every Every-th record at info.
type Progress struct {
	Logger *slog.Logger
	Every  int
	Total  int
}

func (p *Progress) OnStep(r dynamo.Record) {
	attrs := []any{
		"step", r.Step,
		"energy", r.Energy,
		"drmax", r.MaxDisplacement,
		"ratio", r.Ratio,
	}
	if p.Every > 0 && (r.Step%p.Every == 0 || r.Step == p.Total) {
		p.Logger.Info("thermalize", append(attrs, "of", p.Total)...)
		return
	}
	p.Logger.Log(context.Background(), LevelTrace, "step", attrs...)
}
