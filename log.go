//go:build unix

package sigscope

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Keeping the default logger disabled also
// skips install-site stack capture, which is gated on the debug level.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(discardHandler{}))
}

// SetLogger routes this package's diagnostics to l; nil reverts to the
// default, which discards everything. At error level: handler panics, with
// the panic's stack linked to the scope's install site when the logger had
// debug enabled at install time. At debug level: lane starts, deliveries
// with no active scope, and deliveries deferred by a mask.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}
