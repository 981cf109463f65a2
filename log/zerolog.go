package log

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-exception/exception"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano
}

func ConsoleLogger(lifecycle fx.Lifecycle) (*zerolog.Logger, context.Context) {
	// create the logger
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02T15:04:05.000000000Z07:00",
	}).With().Timestamp().Caller().Logger()
	// create the global context with lifecycle cancel binding and the logger
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return zerolog.Ctx(ctx), ctx
}

// NewReportSink returns a Sink that logs every report as a single error event.
func NewReportSink(logger *zerolog.Logger) *exception.Sink {
	return exception.NewSink(&reportWriter{logger: logger})
}

// reportWriter collects the lines of one report and emits them on Flush.
type reportWriter struct {
	mutex  sync.Mutex
	logger *zerolog.Logger
	buffer bytes.Buffer
}

func (w *reportWriter) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.buffer.Write(p)
}

func (w *reportWriter) Flush() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.buffer.Len() == 0 {
		return nil
	}
	report := strings.TrimSuffix(w.buffer.String(), "\n")
	w.buffer.Reset()
	w.logger.Error().Msg(report)
	return nil
}
