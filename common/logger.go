package common

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled returns false
// so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by every engine package.
// By default the engine produces no log output. Pass nil to restore the silent default.
//
// Levels used by the engine:
//   - [slog.LevelDebug]: GPU resource lifecycle and handle resolution
//   - [slog.LevelInfo]: scene construction and device capabilities
//   - [slog.LevelWarn]: device errors reported during traversal
//   - [slog.LevelError]: internal invariant violations
//
// Parameters:
//   - l: the logger to use, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
