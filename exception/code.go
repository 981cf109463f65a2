package exception

import "reflect"

// Code classifies an Error. Implementations are usually small comparable
// values (see the codes package) declared once and shared.
//
// Two codes are compatible only if they compare equal. Codes that cannot be
// compared with == are never equal to anything, not even themselves.
type Code interface {
	// Code returns the unique identifier of this classification.
	Code() string

	// Message returns the human-readable description of this classification.
	Message() string
}

func sameCode(a, b Code) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	typeOfA := reflect.TypeOf(a)
	if typeOfA != reflect.TypeOf(b) || !typeOfA.Comparable() {
		return false
	}
	// a comparable struct may still hold an uncomparable value in an
	// interface field, which makes == panic
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
