package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// logHandler copies records into the log pane and passes them on to next.
type logHandler struct {
	state *AppState
	next  slog.Handler
	attrs []slog.Attr
}

func newLogHandler(state *AppState, next slog.Handler) *logHandler {
	return &logHandler{state: state, next: next}
}

func (h *logHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// The pane shows Info and above even when the next handler is quieter
	return level >= slog.LevelInfo || h.next.Enabled(ctx, level)
}

func (h *logHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelInfo {
		h.state.AppendLog(formatRecord(r, h.attrs))
	}
	if h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &logHandler{state: h.state, next: h.next.WithAttrs(attrs), attrs: merged}
}

// Groups are flattened in the pane.
func (h *logHandler) WithGroup(name string) slog.Handler {
	return &logHandler{state: h.state, next: h.next.WithGroup(name), attrs: h.attrs}
}

// formatRecord renders "[LEVEL] message key=value ..." skipping the
// component attribute every UI record carries.
func formatRecord(r slog.Record, attrs []slog.Attr) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", r.Level, r.Message)
	add := func(a slog.Attr) bool {
		if a.Key == "component" {
			return true
		}
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range attrs {
		add(a)
	}
	r.Attrs(add)
	return b.String()
}
