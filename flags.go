//go:build unix

package sigscope

import (
	"fmt"
	"strings"
)

// Flags adjust delivery behavior for a scope, mirroring the sigaction flags
// they are named for.
type Flags uint32

const (
	// FlagOneShot empties the scope's slot in the handler table when the
	// first delivery is dispatched to it, so the handler is invoked at most
	// once (SA_RESETHAND). The scope's exit still restores whatever the slot
	// held before the scope installed itself.
	FlagOneShot Flags = 1 << iota

	// FlagRestart requests that interrupted syscalls be restarted
	// (SA_RESTART). Advisory: deliveries arrive through the runtime, which
	// already restarts the syscalls it can.
	FlagRestart

	// FlagNoDefer requests that a signal not be blocked during its own
	// handler (SA_NODEFER). Advisory: a signal's lane serializes dispatch
	// with its own handler regardless.
	FlagNoDefer
)

// Has reports whether every flag in f2 is set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}

	known := []struct {
		flag Flags
		name string
	}{
		{FlagOneShot, "ONESHOT"},
		{FlagRestart, "RESTART"},
		{FlagNoDefer, "NODEFER"},
	}

	var parts []string
	for _, k := range known {
		if f.Has(k.flag) {
			parts = append(parts, k.name)
			f &^= k.flag
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(f)))
	}
	return strings.Join(parts, "|")
}
