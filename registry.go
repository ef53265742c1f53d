//go:build unix

package sigscope

import (
	"sync/atomic"
	"syscall"
)

// handlerTable is the per-signal slot table that delivery lanes read and
// scope guards write: one independently-swappable cell per signal number in
// 1..maxSignal. A nil cell means no scope is active for that signal.
//
// All operations are single atomic loads/swaps - no locks, no allocation -
// so a lane can read a slot while a guard on another goroutine is swapping
// it, and the swap itself publishes the installation to the lane.
type handlerTable struct {
	slots [maxSignal]atomic.Pointer[installation]
}

func (t *handlerTable) slot(sig syscall.Signal) *atomic.Pointer[installation] {
	mustSignal(sig)
	return &t.slots[int(sig)-1]
}

// get returns the active installation for sig, or nil.
func (t *handlerTable) get(sig syscall.Signal) *installation {
	return t.slot(sig).Load()
}

// replace swaps in into sig's slot (nil to empty it), returning the previous
// value. Install and restore are both this one operation: install passes the
// new installation, restore passes back whatever install returned.
func (t *handlerTable) replace(sig syscall.Signal, in *installation) *installation {
	return t.slot(sig).Swap(in)
}

// clearIf empties sig's slot only if it still holds in. The one-shot path
// uses this so that a restore racing with the clear always wins.
func (t *handlerTable) clearIf(sig syscall.Signal, in *installation) {
	t.slot(sig).CompareAndSwap(in, nil)
}
