package exception

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink is a destination for error reports. Reports written through the same
// Sink never interleave: each Report call holds the Sink for the whole
// rendering of the error and its causes.
//
// If the underlying writer has a Flush() error method, it is called after
// every report.
type Sink struct {
	mutex  sync.Mutex
	writer *bufio.Writer
	target io.Writer
}

// NewSink creates a Sink writing to writer.
func NewSink(writer io.Writer) *Sink {
	return &Sink{
		writer: bufio.NewWriter(writer),
		target: writer,
	}
}

// Stderr is the Sink used by Error.PrintStackTrace.
var Stderr = NewSink(os.Stderr)

// Report renders err and its whole causal chain, then flushes the Sink. The
// returned error is the first write failure, if any.
func (s *Sink) Report(err error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	render(s.writer, err)
	if err := s.writer.Flush(); err != nil {
		return err
	}
	if flusher, ok := s.target.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// PrintStackTrace reports this Error to Stderr.
func (e *Error) PrintStackTrace() {
	_ = Stderr.Report(e)
}

// Fprint renders err and its causal chain to writer without any locking.
func Fprint(writer io.Writer, err error) error {
	buffered := bufio.NewWriter(writer)
	render(buffered, err)
	return buffered.Flush()
}

// Format implements fmt.Formatter. The verbs %s and %v print Error(), %q a
// quoted Error(), and %+v the full report including causes.
func (e *Error) Format(state fmt.State, verb rune) {
	switch verb {
	case 'v':
		if state.Flag('+') {
			buffered := bufio.NewWriter(state)
			render(buffered, e)
			_ = buffered.Flush()
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(state, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(state, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(state, "%%!%c(*exception.Error=%s)", verb, e.Error())
	}
}

func render(writer *bufio.Writer, err error) {
	for err != nil {
		if classified, ok := err.(*Error); ok && classified != nil {
			renderError(writer, classified)
			err = classified.cause
		} else {
			displayLine(writer, err)
			err = errors.Unwrap(err)
		}
		if err != nil {
			_, _ = writer.WriteString("Caused by: ")
		}
	}
}

func renderError(writer *bufio.Writer, e *Error) {
	displayLine(writer, e)
	if code := e.code; code != nil {
		_, _ = fmt.Fprintf(writer, "\t%T:%v[%s-%s]\n", code, code, code.Code(), code.Message())
	}
	for _, name := range e.propertyNames() {
		_, _ = fmt.Fprintf(writer, "\t%s=[%v]\n", name, e.properties[name])
	}
	for _, frame := range e.stack {
		_, _ = writer.WriteString("\tat ")
		_, _ = writer.WriteString(frame.String())
		_ = writer.WriteByte('\n')
	}
}

func displayLine(writer *bufio.Writer, err error) {
	if message := err.Error(); message != "" {
		_, _ = fmt.Fprintf(writer, "%T: %s\n", err, message)
	} else {
		_, _ = fmt.Fprintf(writer, "%T\n", err)
	}
}
