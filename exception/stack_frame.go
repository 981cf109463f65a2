package exception

import (
	"runtime"
	"strconv"
)

type StackFrame struct {
	Function string
	File     string
	Line     int
}

// String formats the frame as "function(file:line)".
func (f StackFrame) String() string {
	return f.Function + "(" + f.File + ":" + strconv.Itoa(f.Line) + ")"
}

type StackFrames []StackFrame

// StackCapturer captures the call stack of the goroutine calling it.
//
// A skip of 0 returns the frames starting at the caller of CaptureStack, a
// value of 1 skips that frame, and higher values skip more.
type StackCapturer interface {
	CaptureStack(skip int) StackFrames
}

// StackCapturerFunc adapts an ordinary function to StackCapturer. The
// function follows the same skip convention, counted from its own caller.
type StackCapturerFunc func(skip int) StackFrames

func (f StackCapturerFunc) CaptureStack(skip int) StackFrames {
	return f(skip + 1)
}

// RuntimeCapturer captures real stack traces from the Go runtime, keeping at
// most Depth frames.
type RuntimeCapturer struct {
	Depth int
}

const defaultStackDepth = 32

func (c RuntimeCapturer) CaptureStack(skip int) StackFrames {
	depth := c.Depth
	if depth <= 0 {
		depth = defaultStackDepth
	}
	return StackTrace(skip+1, depth)
}

// StackTrace captures at most depth frames of the current goroutine, starting
// skip frames above the caller of StackTrace.
func StackTrace(skip int, depth int) StackFrames {
	programCounters := make([]uintptr, depth)
	programCountersLength := runtime.Callers(2+skip, programCounters)
	if programCountersLength == 0 {
		return nil
	}
	frames := runtime.CallersFrames(programCounters[:programCountersLength])
	stack := make(StackFrames, 0, programCountersLength)
	for {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more || len(stack) == depth {
			break
		}
	}
	return stack
}
