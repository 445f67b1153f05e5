// Package observability owns log handler construction for the CLI. Library
// packages take a *slog.Logger and never build handlers themselves.
package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a configuration level string onto a slog level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger from configuration strings. Format selects the
// text or json handler; every record passes through sensitive-field
// redaction before it is written.
func NewLogger(format, level string, w io.Writer) *slog.Logger {
	return slog.New(NewHandler(format, ParseLevel(level), w))
}

// NewHandler creates a leveled handler for the given format wrapped in
// redaction. Anything other than "json" gets the text handler.
func NewHandler(format string, level slog.Level, w io.Writer) slog.Handler {
	var inner slog.Handler
	switch strings.ToLower(format) {
	case "json":
		inner = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		inner = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	return NewRedactingHandler(inner)
}

const redactedPlaceholder = "[REDACTED]"

// sensitiveKeys are attribute names whose values never reach the log
// output. Comparison ignores case and underscores, so "api_key" and
// "APIKey" both match.
var sensitiveKeys = map[string]bool{
	"apikey":     true,
	"secret":     true,
	"secretkey":  true,
	"password":   true,
	"token":      true,
	"credential": true,
}

// RedactingHandler replaces sensitive attribute values before delegating to
// the wrapped handler. Configuration carries provider credentials, so the
// CLI logger always writes through one of these.
type RedactingHandler struct {
	inner slog.Handler
}

// NewRedactingHandler wraps a handler with sensitive-field redaction.
func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{inner: inner}
}

// Enabled reports whether the wrapped handler handles records at the level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle rewrites the record with sensitive values redacted and passes it on.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(redactAttr(a))
		return true
	})

	return h.inner.Handle(ctx, clean)
}

// WithAttrs redacts the pre-bound attributes before handing them down.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = redactAttr(a)
	}

	return &RedactingHandler{inner: h.inner.WithAttrs(clean)}
}

// WithGroup opens a group on the wrapped handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name)}
}

// redactAttr replaces the value of sensitive attributes. Group members are
// redacted one by one.
func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		clean := make([]slog.Attr, len(members))
		for i, m := range members {
			clean[i] = redactAttr(m)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}

	normalized := strings.ReplaceAll(strings.ToLower(a.Key), "_", "")
	if sensitiveKeys[normalized] {
		return slog.String(a.Key, redactedPlaceholder)
	}

	return a
}
