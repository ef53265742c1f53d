//go:build unix

package sigscope

import (
	"fmt"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// EventInfo describes one signal delivery: which signal arrived, a
// process-wide delivery sequence number, and when the dispatcher observed it.
//
// The pointer passed to a [Handler] is pooled and reused once the handler
// returns; it is only valid for the duration of the call. Copy the struct if
// any of it needs to outlive the handler.
type EventInfo struct {
	Signal syscall.Signal
	Seq    uint64
	At     time.Time
}

// String returns the signal's conventional name and the delivery sequence
// number, like "SIGUSR1 #12".
func (e *EventInfo) String() string {
	return fmt.Sprintf("%s #%d", unix.SignalName(e.Signal), e.Seq)
}

var eventSeq atomic.Uint64

var eventPool = sync.Pool{
	New: func() any { return new(EventInfo) },
}

func newEventInfo(sig syscall.Signal) *EventInfo {
	e := eventPool.Get().(*EventInfo)
	e.Signal = sig
	e.Seq = eventSeq.Add(1)
	e.At = time.Now()
	return e
}

func putEventInfo(e *EventInfo) {
	*e = EventInfo{}
	eventPool.Put(e)
}
