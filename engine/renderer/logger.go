package renderer

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by the rendering packages. By
// default they produce no log output. Pass nil to restore the silent
// default.
//
// Log levels in use:
//   - slog.LevelDebug: benign skips (uniform not declared, unused attribute,
//     zero-sized draw) and per-object lifecycle events
//   - slog.LevelInfo: capability detection summary at initialization
//   - slog.LevelWarn: driver diagnostics (non-empty compile logs on success,
//     deletion of objects that were never uploaded)
//
// SetLogger is safe for concurrent use; everything else in this package
// family assumes the single rendering thread.
//
// Parameters:
//   - l: the logger to install, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger retrieves the logger shared by the rendering packages. Sub-packages
// call this to share one configuration without import cycles.
//
// Returns:
//   - *slog.Logger: the active logger, never nil
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
