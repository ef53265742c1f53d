// obligatory // comment

/*
Package sigscope installs OS signal handlers scoped to a single function
call, with a focus on leaving no trace: a handler is active exactly for the
duration of the call, and is detached on every way out, panics included.

The pieces:

  - Scoped handlers: [SignalScope], [New], [SignalScope.Run], [RunValue]
  - Delivery metadata and masking: [EventInfo], [SigSet], [Flags]
  - Raising signals at the current process: [Raise]
  - Stack trace collection, printing, and linking: [StackTrace], [GetStackTrace], [DumpStack]

# Scoped handlers

The general idea is that installing a signal handler process-wide and forever
is the wrong shape for crash handling, timeouts, fault injection, and tests,
which all want "install, run this code, uninstall". [SignalScope.Run] does
exactly that: it publishes the handler, runs the caller's function, and on
any exit restores whatever the enclosing scope (if any) had installed for the
same signal. Scopes for the same signal nest with strict stack discipline.

# Delivery model

There is one handler-table slot per signal number (1 through 64) and one
dispatch goroutine - a lane - per signal in use. A delivery is dispatched to
whatever the slot holds at dispatch time; an empty slot makes the delivery a
no-op. The OS-side routing a scope sets up is deliberately never torn down:
after the last scope for a signal ends, later deliveries are dropped by the
lane rather than reverting to whatever handler predated this package.

Same-signal deliveries dispatch in order, one at a time. A scope's [SigSet]
mask defers dispatch of the masked signals while its handler runs; deferred
deliveries queue and dispatch oldest-first once the mask clears.

# The handler contract

Handlers run on their signal's lane, concurrently with the scoped function.
The contract is spelled out on [New]; the short version is that a handler
must be quick, must synchronize with the code it interrupts, and must not
block on it unconditionally - [SignalScope.Run] waits out an in-flight
invocation before returning, so a handler that never returns is a deadlock.

# Stack traces

[GetStackTrace] may be given a parent [StackTrace], which gets appended on
producing a string. The package uses this to link a panicking handler's
stack to the scope's install site in the error log (install sites are
captured when the logger, see [SetLogger], has debug enabled). [DumpStack]
returns all goroutine stacks, for handlers whose whole job is diagnostics.
*/
package sigscope
