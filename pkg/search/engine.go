package search

import (
	"log/slog"
)

// Version is returned verbatim by GetStats.
const Version = "1.0.0"

// Engine is the in-process search engine handle. It is safe for
// concurrent use by multiple goroutines: every operation acquires only
// the table locks it needs (see store.go), so reads never block other
// reads and writes only block the tables they touch.
type Engine struct {
	store  *store
	logger *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger sets the diagnostic sink used by BulkImport to report
// per-item failures. A nil logger (the default if this option is not
// passed) falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		store:  newStore(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
