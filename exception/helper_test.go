package exception_test

import (
	"strings"
	"testing"

	"github.com/thanhminhmr/go-exception/exception"
)

type testCode struct {
	id      string
	message string
}

func (c testCode) Code() string    { return c.id }
func (c testCode) Message() string { return c.message }
func (c testCode) String() string  { return c.id }

var (
	codeA = testCode{id: "A", message: "code a"}
	codeB = testCode{id: "B", message: "code b"}
	codeC = testCode{id: "C", message: "code c"}
)

// sliceCode is not comparable.
type sliceCode []string

func (c sliceCode) Code() string    { return strings.Join(c, ".") }
func (c sliceCode) Message() string { return "slice" }

// anyCode is comparable by type but panics on == when value is not.
type anyCode struct {
	value any
}

func (c anyCode) Code() string    { return "ANY" }
func (c anyCode) Message() string { return "any" }

var fixedFrames = exception.StackFrames{
	{Function: "main.handler", File: "/src/main.go", Line: 10},
}

func fixedFactory() *exception.Factory {
	return exception.NewFactory(exception.WithStackCapturer(
		exception.StackCapturerFunc(func(int) exception.StackFrames { return fixedFrames }),
	))
}

func checkStackTrace(t *testing.T, trace exception.StackFrames, suffix string) {
	t.Helper()
	if len(trace) == 0 {
		t.Fatalf("expected non-empty stack trace")
	}
	for _, frame := range trace {
		if strings.HasSuffix(frame.Function, suffix) {
			return
		}
	}
	t.Fatalf("expected a frame ending with %q, got %+v", suffix, trace)
}
