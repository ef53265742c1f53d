//go:build unix

package sigscope

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// signalSource is everything the dispatcher requires of the OS signal
// subsystem. Production use wraps os/signal; tests substitute a channel-fed
// fake so deliveries can be driven synthetically.
type signalSource interface {
	Notify(ch chan<- os.Signal, sig os.Signal)
	Stop(ch chan<- os.Signal)
}

type osSource struct{}

func (osSource) Notify(ch chan<- os.Signal, sig os.Signal) { signal.Notify(ch, sig) }
func (osSource) Stop(ch chan<- os.Signal)                  { signal.Stop(ch) }

// Raise sends sig to the current process. The main uses of scoped handlers -
// tests, fault injection, self-interruption - want a process-targeted kill,
// so the pid plumbing lives here.
func Raise(sig syscall.Signal) error {
	return unix.Kill(unix.Getpid(), sig)
}
