//go:build unix

package sigscope

import (
	"context"
	"log/slog"
	"sync"
)

// installation is one entry in the handler table: a scope's handler, flags,
// and mask, plus the bookkeeping that lets the scope's exit wait out a
// handler invocation that is mid-call when the scope ends.
type installation struct {
	handler Handler
	flags   Flags
	mask    SigSet

	// site is the stack at install time, captured only when the logger has
	// debug enabled. It becomes the parent of the trace logged if the
	// handler panics.
	site *StackTrace

	mu       sync.Mutex
	inFlight uint
	closed   bool
	idle     chan struct{}
}

func newInstallation(handler Handler, flags Flags, mask SigSet) *installation {
	in := &installation{handler: handler, flags: flags, mask: mask}
	if logger().Enabled(context.Background(), slog.LevelDebug) {
		site := GetStackTrace(nil, 2) // skip newInstallation and Run
		in.site = &site
	}
	return in
}

// acquire registers an in-flight handler invocation, pairing with release.
// It returns false once the owning scope has ended; the caller must not
// invoke the handler in that case.
func (in *installation) acquire() bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.closed {
		return false
	}
	in.inFlight += 1
	return true
}

// release marks one acquired invocation as finished.
func (in *installation) release() {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.inFlight == 0 {
		panic("sigscope: release without matching acquire")
	}

	in.inFlight -= 1
	if in.inFlight == 0 && in.idle != nil {
		close(in.idle)
		in.idle = nil
	}
}

// close stops further acquires and blocks until in-flight invocations have
// finished. After close returns the handler is not running and can never run
// again through this installation.
func (in *installation) close() {
	in.mu.Lock()
	in.closed = true
	if in.inFlight == 0 {
		in.mu.Unlock()
		return
	}

	if in.idle == nil {
		in.idle = make(chan struct{})
	}
	idle := in.idle
	in.mu.Unlock()

	<-idle
}
