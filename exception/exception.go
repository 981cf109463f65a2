package exception

import (
	"maps"
	"slices"
)

// Error is a classified error. It carries an optional Code, an optional
// message, an optional cause and a bag of named diagnostic properties, plus
// the stack trace captured when it was created.
//
// The code, message, cause and stack trace never change after construction.
// Properties can be added or overwritten with Set but never removed.
//
// An Error is shared by pointer: wrapping an already classified error with a
// compatible code returns the very same instance, so properties set by any
// holder are visible to every other holder. Set is not safe for concurrent
// use on the same instance.
type Error struct {
	code       Code
	message    string
	cause      error
	properties map[string]any
	stack      StackFrames
}

// New creates an Error holding only a code.
func New(code Code) *Error {
	return Default().newError(1, "", nil, code)
}

// NewMessage creates an Error with a message and a code.
func NewMessage(message string, code Code) *Error {
	return Default().newError(1, message, nil, code)
}

// NewCause creates an Error caused by another error.
func NewCause(cause error, code Code) *Error {
	return Default().newError(1, "", cause, code)
}

// NewFull creates an Error with a message, a cause and a code.
func NewFull(message string, cause error, code Code) *Error {
	return Default().newError(1, message, cause, code)
}

// Error returns the message of this Error. Without a message, the cause's
// text is used, then the code's message.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.message != "":
		return e.message
	case e.cause != nil:
		return e.cause.Error()
	case e.code != nil:
		return e.code.Message()
	}
	return ""
}

// Code returns the code this Error was created with, or nil.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the message this Error was created with. It is empty if
// none was given; unlike Error it never falls back to the cause or the code.
func (e *Error) Message() string {
	return e.message
}

// Unwrap returns the cause of this Error, or nil.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// StackTrace returns the frames captured when this Error was created,
// innermost call first.
func (e *Error) StackTrace() StackFrames {
	return e.stack
}

// Set stores a diagnostic property, overwriting any previous value for the
// same name, and returns the receiver so calls can be chained:
//
//	exception.New(codes.NotFound).Set("table", "customer").Set("id", 42)
func (e *Error) Set(name string, value any) *Error {
	if e.properties == nil {
		e.properties = make(map[string]any)
	}
	e.properties[name] = value
	return e
}

// Properties returns a copy of the diagnostic properties. Changing the
// returned map does not affect the Error.
func (e *Error) Properties() map[string]any {
	if len(e.properties) == 0 {
		return nil
	}
	return maps.Clone(e.properties)
}

// propertyNames returns the property names in ascending lexical order.
func (e *Error) propertyNames() []string {
	return slices.Sorted(maps.Keys(e.properties))
}
