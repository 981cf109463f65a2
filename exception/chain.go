package exception

import "errors"

// CodeOf returns the code of the outermost *Error in err's chain that has a
// code.
func CodeOf(err error) (Code, bool) {
	for err != nil {
		var classified *Error
		if !errors.As(err, &classified) {
			return nil, false
		}
		if classified.code != nil {
			return classified.code, true
		}
		err = classified.cause
	}
	return nil, false
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var classified *Error
		if !errors.As(err, &classified) {
			return false
		}
		if sameCode(classified.code, code) {
			return true
		}
		err = classified.cause
	}
	return false
}
