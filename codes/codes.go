// Package codes is a catalog of error classifications for the exception
// package. Each Code has a stable identifier, a client-safe message and the
// HTTP status used when the error reaches an HTTP client.
package codes

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/thanhminhmr/go-exception/exception"
	"github.com/thanhminhmr/go-exception/helper"
)

// type check
var _ exception.Code = Code{}

// Code is a comparable classification value. Codes are meant to be declared
// once as package-level variables and compared with ==.
type Code struct {
	id         string
	message    string
	httpStatus int
}

// New creates a Code without registering it in any Catalog.
func New(id string, message string, httpStatus int) Code {
	return Code{id: id, message: message, httpStatus: httpStatus}
}

func (c Code) Code() string    { return c.id }
func (c Code) Message() string { return c.message }
func (c Code) HTTPStatus() int { return c.httpStatus }
func (c Code) String() string  { return c.id }

// UnmarshalText resolves an identifier against the Default catalog, so codes
// can be named in configuration.
func (c *Code) UnmarshalText(text []byte) error {
	code, exists := Default.Lookup(string(text))
	if !exists {
		return exception.NewMessage("unknown code "+strconv.Quote(string(text)), InvalidConfig)
	}
	*c = code
	return nil
}

// Catalog registers codes by identifier. It is safe for concurrent use.
type Catalog struct {
	codes helper.SyncMap[string, Code]
}

// Define creates and registers a Code. It panics if the identifier is empty
// or already registered, since that is a programming error caught at init.
func (c *Catalog) Define(id string, message string, httpStatus int) Code {
	if id == "" {
		panic("BUG: code identifier must not be empty")
	}
	code := New(id, message, httpStatus)
	if _, exists := c.codes.PutIfAbsent(id, code); exists {
		panic("BUG: code " + id + " is already defined")
	}
	return code
}

// Lookup returns the Code registered under id.
func (c *Catalog) Lookup(id string) (Code, bool) {
	return c.codes.Get(id)
}

// All returns every registered Code sorted by identifier.
func (c *Catalog) All() []Code {
	all := c.codes.Values()
	slices.SortFunc(all, func(a, b Code) int { return strings.Compare(a.id, b.id) })
	return all
}

// Default is the Catalog holding the predefined codes.
var Default = &Catalog{}

// Define registers a Code in the Default catalog.
func Define(id string, message string, httpStatus int) Code {
	return Default.Define(id, message, httpStatus)
}

// Lookup finds a Code in the Default catalog.
func Lookup(id string) (Code, bool) {
	return Default.Lookup(id)
}

var (
	Unknown  = Define("UNKNOWN", "unknown error", http.StatusInternalServerError)
	Internal = Define("INTERNAL", "internal error", http.StatusInternalServerError)
	Panic    = Define("PANIC", "unexpected panic", http.StatusInternalServerError)

	InvalidInput  = Define("INVALID_INPUT", "invalid input", http.StatusBadRequest)
	InvalidConfig = Define("INVALID_CONFIG", "invalid configuration", http.StatusInternalServerError)

	NotFound  = Define("NOT_FOUND", "resource not found", http.StatusNotFound)
	Conflict  = Define("CONFLICT", "resource conflict", http.StatusConflict)
	Forbidden = Define("FORBIDDEN", "permission denied", http.StatusForbidden)

	Unavailable = Define("UNAVAILABLE", "service unavailable", http.StatusServiceUnavailable)
	Timeout     = Define("TIMEOUT", "operation timed out", http.StatusGatewayTimeout)
	Database    = Define("DATABASE", "database error", http.StatusInternalServerError)
	Startup     = Define("STARTUP", "application lifecycle failure", http.StatusInternalServerError)
)
