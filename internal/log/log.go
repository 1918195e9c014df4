// Package log configures the process-wide slog logger. The terminal belongs
// to the UI, so records go to a file and the most recent ones are kept in
// memory for display.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

const recentLimit = 20

type recent struct {
	mu      sync.Mutex
	records []slog.Record
}

// Handler is a slog.Handler that remembers the latest records it handled.
type Handler struct {
	slog.Handler
	recent *recent
}

// NewHandler wraps handler.
func NewHandler(handler slog.Handler) *Handler {
	return &Handler{Handler: handler, recent: &recent{}}
}

// Handle stores the record and passes it on.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.recent.mu.Lock()
	h.recent.records = append(h.recent.records, r.Clone())
	if len(h.recent.records) > recentLimit {
		h.recent.records = h.recent.records[1:]
	}
	h.recent.mu.Unlock()

	return h.Handler.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs), recent: h.recent}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name), recent: h.recent}
}

// Latest returns the newest record at or above level.
func (h *Handler) Latest(level slog.Level) (slog.Record, bool) {
	h.recent.mu.Lock()
	defer h.recent.mu.Unlock()
	for i := len(h.recent.records) - 1; i >= 0; i-- {
		if h.recent.records[i].Level >= level {
			return h.recent.records[i], true
		}
	}
	return slog.Record{}, false
}

var defaultHandler = NewHandler(slog.NewTextHandler(io.Discard, nil))

// Init installs the default logger. An empty path discards output. The file
// is truncated on each run. The returned func closes it.
func Init(path string, level slog.Level) (func() error, error) {
	var w io.Writer = io.Discard
	closer := func() error { return nil }
	if path != "" {
		// Use O_TRUNC to clear the log file on each new run
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return closer, err
		}
		w, closer = f, f.Close
	}

	defaultHandler = NewHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(slog.New(defaultHandler))
	return closer, nil
}

// Latest returns the newest default logger record at or above level.
func Latest(level slog.Level) (slog.Record, bool) {
	return defaultHandler.Latest(level)
}
