package http

import (
	"io"
	"net/http"

	"github.com/thanhminhmr/go-exception/exception"
)

type ServerResponse interface {
	Render(writer http.ResponseWriter) error
}

// ServerErrorResponse answers a request with the classification of Cause.
// Only the code and its client-safe message are written; the cause chain,
// messages and properties stay in the server-side report.
type ServerErrorResponse struct {
	Cause error
}

// Status returns the HTTP status of the outermost code in the chain of Cause,
// or 500 if the code has none.
func (e ServerErrorResponse) Status() int {
	if code, ok := exception.CodeOf(e.Cause); ok {
		if withStatus, ok := code.(interface{ HTTPStatus() int }); ok {
			if status := withStatus.HTTPStatus(); status >= 400 && status <= 599 {
				return status
			}
		}
	}
	return http.StatusInternalServerError
}

func (e ServerErrorResponse) Render(writer http.ResponseWriter) error {
	header := writer.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	status := e.Status()
	writer.WriteHeader(status)
	body := http.StatusText(status)
	if code, ok := exception.CodeOf(e.Cause); ok {
		body = code.Code() + ": " + code.Message()
	}
	_, err := io.WriteString(writer, body)
	return err
}

func (e ServerErrorResponse) Error() string {
	return e.Cause.Error()
}
