//go:build unix

package sigscope

import (
	"sync/atomic"
	"syscall"
)

// Handler is the callback a [SignalScope] dispatches deliveries to. info is
// pooled and only valid until the handler returns; see [EventInfo].
type Handler func(sig syscall.Signal, info *EventInfo)

// SignalScope couples a signal handler to the dynamic extent of one function
// call: the handler receives deliveries of the scope's signal only between
// [SignalScope.Run] installing it and Run returning, however Run exits.
//
// Scopes for the same signal nest: an inner Run shadows the enclosing
// scope's handler and reinstates it - exactly, not merely cleared - when the
// inner Run ends. Two overlapping non-nested Runs for the same signal are
// not supported: the second install shadows the first, and whichever
// restores last clobbers the slot with a stale value. Nothing detects this.
type SignalScope struct {
	signal  syscall.Signal
	flags   Flags
	mask    SigSet
	handler Handler
	used    atomic.Bool
}

// New builds a scope for sig with the given flags and mask. It has no side
// effects; nothing is installed until [SignalScope.Run].
//
// The handler runs on the signal's dispatch goroutine, concurrently with the
// function Run is executing. It must synchronize its own accesses to state
// shared with that function, must not block indefinitely (Run's exit waits
// for an in-flight invocation to finish, and the signal's lane is stalled
// until the handler returns), and must not Run scopes for signals it can
// itself be dispatched for. None of this can be checked here; a handler that
// breaks the contract can deadlock Run or its signal's lane.
func New(sig syscall.Signal, flags Flags, mask SigSet, handler Handler) *SignalScope {
	return &SignalScope{signal: sig, flags: flags, mask: mask, handler: handler}
}

// Run installs the scope's handler, calls work, and uninstalls the handler
// on every way out - normal return or panic - restoring whatever handler an
// enclosing scope had installed for the same signal. A panic from work
// propagates past Run unchanged, after the restore.
//
// The only error is registration failure for a signal the OS would reject
// (out of range, or SIGKILL/SIGSTOP), wrapping [unix.EINVAL]; the handler
// table is left clean on that path too.
//
// Once Run returns, the handler is not running and can never run again: the
// return waits out any invocation still in flight. The OS-side routing is
// deliberately not torn down - a later delivery of the signal with no scope
// active is dropped.
//
// A scope is single-use. A second Run panics.
func (s *SignalScope) Run(work func()) error {
	if !s.used.CompareAndSwap(false, true) {
		panic("sigscope: SignalScope.Run called twice")
	}
	if s.signal <= 0 || s.signal > maxSignal {
		// Table-bounds failures surface like any other registration
		// rejection, but without touching the table.
		return checkSignal(s.signal)
	}

	d := sharedDispatcher()
	in := newInstallation(s.handler, s.flags, s.mask)

	prev := d.registry.replace(s.signal, in)
	if err := d.watch(s.signal); err != nil {
		d.registry.replace(s.signal, prev)
		in.close()
		return err
	}

	// The swap above published in to the signal's lane; the deferred swap
	// below unpublishes it and reinstates prev on every exit path. Both are
	// atomic, ordering the table writes against a lane's concurrent lookup.
	defer func() {
		d.registry.replace(s.signal, prev)
		in.close()
	}()

	work()
	return nil
}

// RunValue is [SignalScope.Run] for work that produces a value.
func RunValue[T any](s *SignalScope, work func() T) (T, error) {
	var v T
	err := s.Run(func() { v = work() })
	return v, err
}
