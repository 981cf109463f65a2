package exception

import "sync/atomic"

// Factory creates Errors and captures their stack traces with its
// StackCapturer. The zero value is not usable; use NewFactory.
type Factory struct {
	capturer StackCapturer
}

// FactoryOption configures a Factory created by NewFactory.
type FactoryOption func(*Factory)

// WithStackCapturer replaces the runtime stack capturer, typically with a
// deterministic one in tests.
func WithStackCapturer(capturer StackCapturer) FactoryOption {
	return func(f *Factory) { f.capturer = capturer }
}

// WithStackDepth limits the number of frames captured by the runtime capturer.
func WithStackDepth(depth int) FactoryOption {
	return func(f *Factory) { f.capturer = RuntimeCapturer{Depth: depth} }
}

func NewFactory(options ...FactoryOption) *Factory {
	factory := &Factory{capturer: RuntimeCapturer{Depth: defaultStackDepth}}
	for _, option := range options {
		option(factory)
	}
	return factory
}

// NewFactoryFromConfig creates a Factory capturing config.StackDepth frames.
func NewFactoryFromConfig(config *Config) *Factory {
	return NewFactory(WithStackDepth(int(config.StackDepth)))
}

var defaultFactory atomic.Pointer[Factory]

func init() {
	defaultFactory.Store(NewFactory())
}

// Default returns the Factory used by the package-level functions.
func Default() *Factory {
	return defaultFactory.Load()
}

// SetDefault replaces the Factory used by the package-level functions. A nil
// factory is ignored.
func SetDefault(factory *Factory) {
	if factory != nil {
		defaultFactory.Store(factory)
	}
}

// newError creates an Error whose stack trace starts skip frames above the
// caller of newError.
func (f *Factory) newError(skip int, message string, cause error, code Code) *Error {
	return &Error{
		code:    code,
		message: message,
		cause:   cause,
		stack:   f.capturer.CaptureStack(skip + 1),
	}
}

func (f *Factory) New(code Code) *Error {
	return f.newError(1, "", nil, code)
}

func (f *Factory) NewMessage(message string, code Code) *Error {
	return f.newError(1, message, nil, code)
}

func (f *Factory) NewCause(cause error, code Code) *Error {
	return f.newError(1, "", cause, code)
}

func (f *Factory) NewFull(message string, cause error, code Code) *Error {
	return f.newError(1, message, cause, code)
}

// wrap implements WrapFull; skip has the same meaning as in newError.
func (f *Factory) wrap(skip int, message string, cause error, code Code) *Error {
	if existing, ok := cause.(*Error); ok && existing != nil {
		if code == nil || sameCode(code, existing.code) {
			return existing
		}
	}
	return f.newError(skip+1, message, cause, code)
}

// WrapFull converts cause into an *Error with the given message and code,
// avoiding redundant nesting.
//
//   - If cause is not an *Error, a new Error wrapping it is returned.
//   - If cause is an *Error and code is nil or equal to its code, cause itself
//     is returned unchanged. The message is discarded in that case; use Set on
//     the result, or a different code, to keep the extra context.
//   - Otherwise a new Error with the new code wraps cause.
//
// Only cause itself is inspected, not the errors it wraps. A nil cause yields
// a new Error without a cause.
func (f *Factory) WrapFull(message string, cause error, code Code) *Error {
	return f.wrap(1, message, cause, code)
}

// Wrap is WrapFull without message and code.
func (f *Factory) Wrap(cause error) *Error {
	return f.wrap(1, "", cause, nil)
}

// WrapMessage is WrapFull without code.
func (f *Factory) WrapMessage(message string, cause error) *Error {
	return f.wrap(1, message, cause, nil)
}

// WrapCode is WrapFull without message.
func (f *Factory) WrapCode(cause error, code Code) *Error {
	return f.wrap(1, "", cause, code)
}

// WrapFull wraps cause using the default Factory. See Factory.WrapFull.
func WrapFull(message string, cause error, code Code) *Error {
	return Default().wrap(1, message, cause, code)
}

// Wrap is WrapFull without message and code.
func Wrap(cause error) *Error {
	return Default().wrap(1, "", cause, nil)
}

// WrapMessage is WrapFull without code.
func WrapMessage(message string, cause error) *Error {
	return Default().wrap(1, message, cause, nil)
}

// WrapCode is WrapFull without message.
func WrapCode(cause error, code Code) *Error {
	return Default().wrap(1, "", cause, code)
}
