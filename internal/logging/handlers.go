package logging

import (
	"context"
	"log/slog"
)

// FanoutHandler sends every record to each of its handlers that is enabled
// for the record's level.
type FanoutHandler struct {
	handlers []slog.Handler
}

// NewFanoutHandler drops nil handlers.
func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	valid := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			valid = append(valid, h)
		}
	}
	return &FanoutHandler{handlers: valid}
}

func (f *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle never fails. A handler that errors does not stop the others.
func (f *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		_ = h.Handle(ctx, r.Clone())
	}
	return nil
}

func (f *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f *FanoutHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f *FanoutHandler) each(wrap func(slog.Handler) slog.Handler) *FanoutHandler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = wrap(h)
	}
	return &FanoutHandler{handlers: handlers}
}

// ContextProvider returns attributes to attach to every record. It is
// called once per record so the values may change between records.
type ContextProvider func() []slog.Attr

// PlanningContext tags records with the side being planned for and the
// theater name.
func PlanningContext(side, theater string) ContextProvider {
	attrs := []slog.Attr{slog.String("side", side), slog.String("theater", theater)}
	return func() []slog.Attr { return attrs }
}

// ContextHandler injects the provider's attributes into each record.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{inner: inner, provider: provider}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), provider: h.provider}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{inner: h.inner.WithGroup(name), provider: h.provider}
}
