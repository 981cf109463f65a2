package log

import (
	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/exception"

	"github.com/rs/zerolog"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"
)

// fxLogger is an event logger that logs events to Zerolog and reports the
// failures it sees to an exception sink.
type fxLogger struct {
	*zerolog.Logger
	sink *exception.Sink
}

// InitFxLogger returns the fx event logger. A nil sink disables reports.
func InitFxLogger(logger *zerolog.Logger, sink *exception.Sink) fxevent.Logger {
	return fxLogger{Logger: logger, sink: sink}
}

type moduleName string

func (m moduleName) MarshalZerologObject(event *zerolog.Event) {
	if m != "" {
		event.Str("name", string(m))
	}
}

// failure classifies the root cause of an fx error as a lifecycle failure,
// reports it and returns an error event for the caller to complete.
func (l fxLogger) failure(err error, step string) *zerolog.Event {
	failed := exception.WrapFull(step, dig.RootCause(err), codes.Startup)
	if l.sink != nil {
		if reportErr := l.sink.Report(failed); reportErr != nil {
			l.Warn().Err(reportErr).Msg("Failed to report lifecycle failure")
		}
	}
	return l.Error().Err(failed)
}

// LogEvent logs the given event to the provided Zerolog.
func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.Trace().
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Msg("OnStart hook executing")
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.failure(e.Err, "OnStart hook failed").
				Str("callee", e.FunctionName).
				Str("caller", e.CallerName).
				Msg("OnStart hook failed")
		} else {
			l.Trace().
				Str("callee", e.FunctionName).
				Str("caller", e.CallerName).
				Dur("runtime", e.Runtime).
				Msg("OnStart hook executed")
		}
	case *fxevent.OnStopExecuting:
		l.Trace().
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Msg("OnStop hook executing")
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.failure(e.Err, "OnStop hook failed").
				Str("callee", e.FunctionName).
				Str("caller", e.CallerName).
				Msg("OnStop hook failed")
		} else {
			l.Trace().
				Str("callee", e.FunctionName).
				Str("caller", e.CallerName).
				Dur("runtime", e.Runtime).
				Msg("OnStop hook executed")
		}
	case *fxevent.Supplied:
		if e.Err != nil {
			l.failure(e.Err, "Supply failed").
				Str("type", e.TypeName).
				EmbedObject(moduleName(e.ModuleName)).
				Msg("Error encountered while applying options")
		} else {
			l.Debug().
				Str("type", e.TypeName).
				EmbedObject(moduleName(e.ModuleName)).
				Msg("Supplied")
		}
	case *fxevent.Provided:
		if e.Err != nil {
			l.failure(e.Err, "Provide failed").
				Str("constructor", e.ConstructorName).
				EmbedObject(moduleName(e.ModuleName)).
				Msg("Error encountered while applying options")
		} else {
			l.Debug().
				Str("constructor", e.ConstructorName).
				Strs("types", e.OutputTypeNames).
				EmbedObject(moduleName(e.ModuleName)).
				Bool("private", e.Private).
				Msg("Provided")
		}
	case *fxevent.Decorated:
		if e.Err != nil {
			l.failure(e.Err, "Decorate failed").
				Str("decorator", e.DecoratorName).
				EmbedObject(moduleName(e.ModuleName)).
				Msg("Error encountered while applying options")
		} else {
			l.Debug().
				Str("decorator", e.DecoratorName).
				Strs("types", e.OutputTypeNames).
				EmbedObject(moduleName(e.ModuleName)).
				Msg("Decorated")
		}
	case *fxevent.Invoking:
		// Do not log stack as it will make logs hard to read.
		l.Debug().
			Str("function", e.FunctionName).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Invoking")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.failure(e.Err, "Invoke failed").
				Str("function", e.FunctionName).
				EmbedObject(moduleName(e.ModuleName)).
				Msg("Invoke failed")
		}
	case *fxevent.Stopping:
		l.Info().
			Stringer("signal", e.Signal).
			Msg("Received signal")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.failure(e.Err, "Stop failed").Msg("Stop failed")
		}
	case *fxevent.RollingBack:
		l.failure(e.StartErr, "Start failed").Msg("Start failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.failure(e.Err, "Rollback failed").Msg("Rollback failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.failure(e.Err, "Start failed").Msg("Start failed")
		} else {
			l.Info().Msg("Started")
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.failure(e.Err, "Logger initialization failed").Msg("Logger initialization failed")
		} else {
			l.Info().Str("function", e.ConstructorName).Msg("Initialized logger")
		}
	}
}
