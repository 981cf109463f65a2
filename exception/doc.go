// Package exception provides a classified error type that carries a Code, a
// message, a cause and named diagnostic properties through a call stack.
//
// Errors are created with New, NewMessage, NewCause and NewFull, or adapted
// at abstraction boundaries with the Wrap family, which reuses an existing
// *Error instead of nesting it again when the classification does not change:
//
//	row, err := repository.Get(ctx, id)
//	if err != nil {
//		return exception.WrapFull("load customer", err, codes.NotFound).Set("id", id)
//	}
//
// A Sink renders an error and all of its causes as a text report with the
// code, the sorted properties and the captured stack frames:
//
//	*exception.Error: load customer
//		codes.Code:NOT_FOUND[NOT_FOUND-resource not found]
//		id=[42]
//		at main.load(/src/main.go:12)
//	Caused by: *errors.errorString: no rows in result set
package exception
