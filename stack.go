//go:build unix

package sigscope

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// StackTrace is a captured call stack, optionally linked to a Parent trace
// from another goroutine. The dispatcher uses the linking to join a
// handler's panic stack to the install site of the scope that registered it,
// so the log shows both where the handler blew up and where it came from.
//
// Collection is optimized (pooled PC buffers); printing is not.
type StackTrace struct {
	Frames []StackFrame
	Parent *StackTrace
}

type StackFrame struct {
	Function string
	File     string
	Line     int
}

// GetStackTrace captures the calling goroutine's stack, skipping the given
// number of frames above GetStackTrace itself, with parent (possibly nil)
// attached for printing.
func GetStackTrace(parent *StackTrace, skip uint) StackTrace {
	frames := captureFrames(skip + 1) // skip the frame introduced by GetStackTrace
	return StackTrace{Frames: frames, Parent: parent}
}

func (st StackTrace) String() string {
	var b strings.Builder

	for {
		if len(st.Frames) == 0 {
			b.WriteString("<empty stack>\n")
		}
		for _, f := range st.Frames {
			if f.Function == "" {
				b.WriteString("<unknown function>")
			} else {
				b.WriteString(f.Function)
				b.WriteString("(...)")
			}
			b.WriteString("\n\t")
			if f.File == "" {
				b.WriteString("<unknown file>")
			} else {
				b.WriteString(f.File)
				if f.Line != 0 {
					b.WriteByte(':')
					b.WriteString(strconv.Itoa(f.Line))
				}
			}
			b.WriteByte('\n')
		}

		if st.Parent == nil {
			return b.String()
		}
		st = *st.Parent
	}
}

var pcBufPool = sync.Pool{
	New: func() any {
		buf := make([]uintptr, 128)
		return &buf
	},
}

func putPCBuffer(buf *[]uintptr) {
	if len(*buf) < 1024 {
		pcBufPool.Put(buf)
	}
}

func captureFrames(skip uint) []StackFrame {
	skip += 2 // skip the frame introduced by this function and runtime.Callers

	pcBuf := pcBufPool.Get().(*[]uintptr)
	defer putPCBuffer(pcBuf)

	// read program counters into the buffer, growing it until it fits the
	// whole stack.
	var pc []uintptr
	for {
		n := runtime.Callers(0, *pcBuf)
		if n == 0 {
			panic("runtime.Callers(0, ...) returned zero")
		}
		if n < len(*pcBuf) {
			pc = (*pcBuf)[:n]
			break
		}
		*pcBuf = make([]uintptr, 2*len(*pcBuf))
	}

	framesIter := runtime.CallersFrames(pc)
	var frames []StackFrame
	for more := true; more; {
		var frame runtime.Frame
		frame, more = framesIter.Next()

		if skip > 0 {
			skip -= 1
			continue
		}

		frames = append(frames, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
	}

	return frames
}

// DumpStack returns the stacks of all goroutines in the runtime's own
// format. It's the usual companion to a diagnostic signal scope - e.g. a
// SIGUSR1 handler that logs what the process is doing.
func DumpStack() string {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, 2*len(buf))
	}
}
