//go:build unix

package sigscope

import (
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// maxSignal bounds the signal numbers this package manages. The handler table
// has one slot per signal in 1..maxSignal, which covers every signal number in
// use on the supported platforms, including the Linux realtime range.
const maxSignal = 64

// SigSet is a set of signals. Used as a scope's mask, it defers dispatch of
// every signal in the set while the scope's handler runs; deferred deliveries
// queue rather than drop, and are dispatched in arrival order once the handler
// returns.
//
// The zero SigSet is empty. SigSet is a value type: With and Without return
// modified copies.
type SigSet struct {
	bits uint64
}

// SigSetOf returns a SigSet containing the given signals.
func SigSetOf(sigs ...syscall.Signal) SigSet {
	var s SigSet
	for _, sig := range sigs {
		s = s.With(sig)
	}
	return s
}

// With returns a copy of s that includes sig.
func (s SigSet) With(sig syscall.Signal) SigSet {
	return SigSet{bits: s.bits | sigBit(sig)}
}

// Without returns a copy of s that excludes sig.
func (s SigSet) Without(sig syscall.Signal) SigSet {
	return SigSet{bits: s.bits &^ sigBit(sig)}
}

// Has reports whether sig is in the set.
func (s SigSet) Has(sig syscall.Signal) bool {
	return sig > 0 && sig <= maxSignal && s.bits&sigBit(sig) != 0
}

// Empty reports whether the set contains no signals.
func (s SigSet) Empty() bool {
	return s.bits == 0
}

// Signals returns the signals in the set in ascending numeric order, or nil
// for an empty set.
func (s SigSet) Signals() []syscall.Signal {
	if s.bits == 0 {
		return nil
	}
	var sigs []syscall.Signal
	for sig := syscall.Signal(1); sig <= maxSignal; sig++ {
		if s.Has(sig) {
			sigs = append(sigs, sig)
		}
	}
	return sigs
}

// String returns the conventional names of the signals in the set, like
// "[SIGUSR1 SIGUSR2]".
func (s SigSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, sig := range s.Signals() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(unix.SignalName(sig))
	}
	b.WriteByte(']')
	return b.String()
}

func sigBit(sig syscall.Signal) uint64 {
	mustSignal(sig)
	return 1 << (uint(sig) - 1)
}

// mustSignal panics on signal numbers the handler table cannot represent.
// Everything reachable from the public API validates before touching the
// table, so hitting this is a bug in this package or a caller ignoring a
// documented bound.
func mustSignal(sig syscall.Signal) {
	if sig <= 0 || sig > maxSignal {
		panic(fmt.Sprintf("sigscope: signal number %d out of range", int(sig)))
	}
}
