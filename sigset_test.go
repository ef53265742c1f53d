//go:build unix

package sigscope_test

import (
	"syscall"
	"testing"

	sigscope "github.com/exrook/scoped-signal"
	"github.com/google/go-cmp/cmp"
)

func TestSigSetBasics(t *testing.T) {
	t.Parallel()

	var empty sigscope.SigSet
	assert(empty.Empty())
	assert(!empty.Has(syscall.SIGUSR1))
	assert(empty.Signals() == nil)

	s := sigscope.SigSetOf(syscall.SIGUSR2, syscall.SIGHUP, syscall.SIGUSR1)
	assert(!s.Empty())
	assert(s.Has(syscall.SIGUSR1) && s.Has(syscall.SIGUSR2) && s.Has(syscall.SIGHUP))
	assert(!s.Has(syscall.SIGWINCH))

	want := []syscall.Signal{syscall.SIGHUP, syscall.SIGUSR1, syscall.SIGUSR2}
	if diff := cmp.Diff(want, s.Signals()); diff != "" {
		t.Fatalf("signals mismatch (-want +got):\n%s", diff)
	}

	// value semantics: With/Without return copies
	s2 := s.Without(syscall.SIGHUP)
	assert(s.Has(syscall.SIGHUP))
	assert(!s2.Has(syscall.SIGHUP))
	s3 := s2.With(syscall.SIGHUP)
	if diff := cmp.Diff(s.Signals(), s3.Signals()); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSigSetString(t *testing.T) {
	t.Parallel()

	if got := (sigscope.SigSet{}).String(); got != "[]" {
		t.Errorf("empty set: got %q", got)
	}
	s := sigscope.SigSetOf(syscall.SIGUSR2, syscall.SIGUSR1)
	if got := s.String(); got != "[SIGUSR1 SIGUSR2]" {
		t.Errorf("got %q", got)
	}
}

func TestSigSetOutOfRangePanics(t *testing.T) {
	t.Parallel()

	for _, sig := range []syscall.Signal{0, -1, 65} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for signal %d", int(sig))
				}
			}()
			_ = sigscope.SigSetOf(sig)
		}()
	}
}

func TestFlagsString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		flags sigscope.Flags
		want  string
	}{
		{0, "0"},
		{sigscope.FlagOneShot, "ONESHOT"},
		{sigscope.FlagOneShot | sigscope.FlagRestart, "ONESHOT|RESTART"},
		{sigscope.FlagNoDefer | 1<<20, "NODEFER|0x100000"},
	}
	for _, c := range cases {
		if got := c.flags.String(); got != c.want {
			t.Errorf("Flags(%#x).String() = %q, want %q", uint32(c.flags), got, c.want)
		}
	}
}
