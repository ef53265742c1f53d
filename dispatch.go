//go:build unix

package sigscope

import (
	"fmt"
	"os"
	"sync"
	"syscall"

	"golang.org/x/exp/slices"
	"golang.org/x/sys/unix"
)

// laneBufferSize is the capacity of each per-signal delivery channel.
// os/signal drops a delivery when the channel is full, so the buffer bounds
// how many deliveries can queue behind a slow or mask-deferred handler.
const laneBufferSize = 64

// uncatchable lists the signals sigaction itself refuses.
var uncatchable = []syscall.Signal{unix.SIGKILL, unix.SIGSTOP}

// checkSignal validates sig the way sigaction would, wrapping unix.EINVAL so
// callers can match the failure with errors.Is.
func checkSignal(sig syscall.Signal) error {
	if sig <= 0 || sig > maxSignal {
		return fmt.Errorf("sigscope: signal number %d out of range: %w", int(sig), unix.EINVAL)
	}
	if slices.Contains(uncatchable, sig) {
		return fmt.Errorf("sigscope: %s cannot be caught: %w", unix.SignalName(sig), unix.EINVAL)
	}
	return nil
}

// dispatcher owns the handler table and one delivery lane per watched
// signal. There is a single process-wide dispatcher, built on first use;
// tests construct their own around a fake source.
type dispatcher struct {
	source   signalSource
	registry handlerTable

	mu      sync.Mutex
	cleared *sync.Cond // broadcast when holds decrease
	// holds[sig] counts running handlers whose mask contains sig. A lane
	// dispatches a delivery of sig only once holds[sig] is zero.
	holds   [maxSignal + 1]int
	watched [maxSignal + 1]bool
}

func newDispatcher(source signalSource) *dispatcher {
	d := &dispatcher{source: source}
	d.cleared = sync.NewCond(&d.mu)
	return d
}

var (
	sharedOnce sync.Once
	shared     *dispatcher
)

func sharedDispatcher() *dispatcher {
	sharedOnce.Do(func() {
		shared = newDispatcher(osSource{})
	})
	return shared
}

// watch routes sig's deliveries to the dispatcher, starting that signal's
// lane on first use. The routing is never torn down, even once every scope
// for sig has ended: a delivery that finds an empty slot is dropped by the
// lane instead.
func (d *dispatcher) watch(sig syscall.Signal) error {
	if err := checkSignal(sig); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.watched[sig] {
		return nil
	}
	d.watched[sig] = true

	ch := make(chan os.Signal, laneBufferSize)
	d.source.Notify(ch, sig)
	go d.lane(sig, ch)

	logger().Debug("sigscope: lane started", "signal", unix.SignalName(sig))
	return nil
}

// lane is the per-signal dispatch loop. It exits only if the source closes
// the channel, which the OS source never does.
func (d *dispatcher) lane(sig syscall.Signal, ch <-chan os.Signal) {
	for range ch {
		d.dispatch(sig)
	}
}

// dispatch delivers one arrival of sig: wait until no running handler masks
// sig, then invoke whatever the slot holds at that point. Looking the slot
// up after clearance means a deferred delivery goes to the handler installed
// when it finally dispatches, not the one installed when it arrived.
func (d *dispatcher) dispatch(sig syscall.Signal) {
	d.mu.Lock()
	if d.holds[sig] > 0 {
		logger().Debug("sigscope: delivery deferred by mask", "signal", unix.SignalName(sig))
		for d.holds[sig] > 0 {
			d.cleared.Wait()
		}
	}

	in := d.registry.get(sig)
	if in == nil || !in.acquire() {
		d.mu.Unlock()
		logger().Debug("sigscope: delivery with no active scope", "signal", unix.SignalName(sig))
		return
	}
	d.hold(in.mask, 1)
	d.mu.Unlock()

	if in.flags.Has(FlagOneShot) {
		d.registry.clearIf(sig, in)
	}

	info := newEventInfo(sig)
	d.invoke(sig, in, info)
	putEventInfo(info)

	d.mu.Lock()
	d.hold(in.mask, -1)
	d.mu.Unlock()
	d.cleared.Broadcast()

	in.release()
}

// hold adjusts the mask-defer counts for every signal in mask. Caller holds
// d.mu.
func (d *dispatcher) hold(mask SigSet, delta int) {
	for _, sig := range mask.Signals() {
		d.holds[sig] += delta
	}
}

// invoke runs the handler, containing a panic: crashing the process from a
// dispatch goroutine would surface a stack unrelated to any caller. The
// panic is logged instead, with the trace linked to the scope's install site
// when that was captured.
func (d *dispatcher) invoke(sig syscall.Signal, in *installation, info *EventInfo) {
	defer func() {
		if p := recover(); p != nil {
			st := GetStackTrace(in.site, 2) // skip this func and runtime.gopanic
			logger().Error("sigscope: signal handler panicked",
				"signal", unix.SignalName(sig),
				"panic", p,
				"stack", st.String(),
			)
		}
	}()

	in.handler(sig, info)
}
