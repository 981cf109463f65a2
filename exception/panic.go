package exception

const panicMessage = "panicked"

// Panic panics with a new Error holding message and code, so that Recover
// returns it with the stack trace of the Panic call.
func Panic(message string, code Code) {
	panic(Default().newError(1, message, nil, code))
}

// Recover converts a value returned by the builtin recover into an Error.
//
// It returns nil if recovered is nil and the value itself if it already is an
// *Error. A recovered error becomes the cause of a new Error classified with
// code; any other value is kept in the "recovered" property.
//
//	defer func() {
//		if err := exception.Recover(recover(), codes.Panic); err != nil {
//			...
//		}
//	}()
func Recover(recovered any, code Code) *Error {
	return Default().recover(1, recovered, code)
}

// Recover is the Factory variant of the package-level Recover.
func (f *Factory) Recover(recovered any, code Code) *Error {
	return f.recover(1, recovered, code)
}

func (f *Factory) recover(skip int, recovered any, code Code) *Error {
	switch value := recovered.(type) {
	case nil:
		return nil
	case *Error:
		if value != nil {
			return value
		}
	case error:
		return f.newError(skip+1, panicMessage, value, code)
	}
	return f.newError(skip+1, panicMessage, nil, code).Set("recovered", recovered)
}
