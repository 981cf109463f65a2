package log

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/thanhminhmr/go-exception/exception"

	"github.com/rs/zerolog"
)

// Func describes a function value the same way report stack frames are
// printed, e.g. "main.handler(/src/main.go:12)".
func Func(v any) fmt.Stringer {
	return _func{v: v}
}

// Funcs describes a slice of function values as a zerolog array.
func Funcs[S ~[]E, E any](v S) zerolog.LogArrayMarshaler {
	return _funcs[S, E]{v: v}
}

// FuncFrame resolves the declaration site of a function value.
func FuncFrame(v any) (exception.StackFrame, bool) {
	if v == nil {
		return exception.StackFrame{}, false
	}
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Func {
		return exception.StackFrame{}, false
	}
	funcForPC := runtime.FuncForPC(value.Pointer())
	if funcForPC == nil {
		return exception.StackFrame{}, false
	}
	file, line := funcForPC.FileLine(funcForPC.Entry())
	return exception.StackFrame{Function: funcForPC.Name(), File: file, Line: line}, true
}

type _func struct {
	v any
}

func (f _func) String() string {
	if f.v == nil {
		return "<nil>"
	}
	if frame, ok := FuncFrame(f.v); ok {
		return frame.String()
	}
	return "<unknown>"
}

type _funcs[S ~[]E, E any] struct {
	v S
}

func (f _funcs[S, E]) MarshalZerologArray(array *zerolog.Array) {
	for _, v := range f.v {
		array.Str(_func{v}.String())
	}
}
