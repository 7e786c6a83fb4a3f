package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to drop records by tag,
// package or file.
type filteringHandler struct {
	base    slog.Handler
	filters *filters
	tag     string // tag attached through WithAttrs, if any
}

func newFilteringHandler(base slog.Handler, f *filters) *filteringHandler {
	return &filteringHandler{base: base, filters: f}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// allowed applies an allow-list and a deny-list to one value. The deny-list
// wins. An empty value only fails when an allow-list is present.
func allowed(value string, enabled, disabled map[string]struct{}) bool {
	value = strings.ToLower(value)
	if value != "" {
		if _, found := disabled[value]; found {
			return false
		}
	}
	if enabled == nil {
		return true
	}
	_, found := enabled[value]
	return found && value != ""
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.filters == nil || h.filters.empty() {
		return h.base.Handle(ctx, r)
	}

	pkg, file := sourceOf(r)
	if pkg != "" && !allowed(pkg, h.filters.enabledPackages, h.filters.disabledPackages) {
		return nil
	}
	if file != "" && !allowed(file, h.filters.enabledFiles, h.filters.disabledFiles) {
		return nil
	}

	tag := h.tag
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	if !allowed(tag, h.filters.enabledTags, h.filters.disabledTags) {
		return nil
	}

	return h.base.Handle(ctx, r)
}

// sourceOf resolves the caller's package directory and file base name from
// the record's program counter.
func sourceOf(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &filteringHandler{base: h.base.WithAttrs(attrs), filters: h.filters, tag: h.tag}
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = a.Value.String()
		}
	}
	return next
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{base: h.base.WithGroup(name), filters: h.filters, tag: h.tag}
}
