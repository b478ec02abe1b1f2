package log

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// TidyHandler wraps an slog.Handler to shorten filesystem paths.
// String attribute values that begin with the user's home directory
// are rewritten with a "~" prefix before being passed to the
// underlying handler. Group attributes are rewritten recursively.
//
// Design decision: We use a handler wrapper rather than rewriting at
// each call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay free of presentation concerns
type TidyHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the home directory prefix to rewrite. Empty disables rewriting.
	home string
}

// NewTidyHandler creates a new TidyHandler wrapping the given handler.
// If handler is nil, the returned TidyHandler uses slog.Default().Handler().
func NewTidyHandler(handler slog.Handler) *TidyHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &TidyHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TidyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *TidyHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.tidyAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *TidyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	tidied := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		tidied[i] = h.tidyAttr(a)
	}
	return &TidyHandler{handler: h.handler.WithAttrs(tidied), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *TidyHandler) WithGroup(name string) slog.Handler {
	return &TidyHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// tidyAttr rewrites a single attribute, recursively handling groups.
func (h *TidyHandler) tidyAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		tidied := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			tidied[i] = h.tidyAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(tidied...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	return slog.Attr{Key: a.Key, Value: slog.StringValue(h.tidyPath(a.Value.String()))}
}

// tidyPath replaces the home directory prefix with "~".
// Values that merely contain the home directory elsewhere are left
// alone; only a leading prefix marks a path.
func (h *TidyHandler) tidyPath(s string) string {
	if h.home == "" || !strings.HasPrefix(s, h.home) {
		return s
	}

	rest := strings.TrimPrefix(s, h.home)
	if rest == "" {
		return "~"
	}
	// Require a path separator after the prefix so "/home/userdata"
	// is not rewritten for home "/home/user".
	if rest[0] != '/' && rest[0] != '\\' {
		return s
	}
	return "~" + rest
}
