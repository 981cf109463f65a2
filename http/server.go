package http

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/exception"
	"github.com/thanhminhmr/go-exception/log"
	"go.uber.org/fx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewServer(
	logger *zerolog.Logger,
	lifecycle fx.Lifecycle,
	config *ServerConfig,
	extraConfig *ServerExtraConfig,
	sink *exception.Sink,
) chi.Router {
	// create route
	router := chi.NewRouter()
	// create the http server
	server := httpServer{
		logger: logger,
		router: router,
		server: http.Server{
			Addr:              ":" + strconv.FormatUint(uint64(config.Port), 10),
			Handler:           router,
			ReadHeaderTimeout: time.Duration(extraConfig.ReadHeaderTimeout) * time.Second,
			IdleTimeout:       time.Duration(extraConfig.IdleTimeout) * time.Second,
			MaxHeaderBytes:    int(extraConfig.MaxHeaderBytes),
		},
	}
	panicCode := extraConfig.PanicCode
	if panicCode == (codes.Code{}) {
		panicCode = codes.Panic
	}
	// set a sane default middleware stack
	router.Use(
		server.log,
		Recoverer(sink, panicCode),
		middleware.StripSlashes,
	)
	// add to lifecycle
	lifecycle.Append(fx.Hook{
		OnStart: server.onStart,
		OnStop:  server.onStop,
	})
	return router
}

type httpServer struct {
	logger *zerolog.Logger
	router *chi.Mux
	server http.Server
}

func (s *httpServer) onStart(_ context.Context) error {
	// dump all routes
	s.logger.Info().Msg("Listing all routes...")
	if err := chi.Walk(s.router, s.dumpRoutes); err != nil {
		s.logger.Error().Err(err).Msg("Error walking routes")
		return exception.WrapFull("walk routes", err, codes.Startup)
	}
	s.logger.Info().Msg("Listed all routes")
	// start the server
	go s.serve()
	return nil
}

func (s *httpServer) serve() {
	s.logger.Info().Str("addr", s.server.Addr).Msgf("Start serving")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error().Err(err).Msg("Shutdown with error")
	}
}

func (s *httpServer) onStop(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down...")
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Shutdown with error")
		return exception.WrapFull("shutdown http server", err, codes.Unavailable).Set("addr", s.server.Addr)
	}
	s.logger.Info().Msg("Shutdown complete")
	return nil
}

func (s *httpServer) dumpRoutes(
	method string,
	route string,
	handler http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) error {
	s.logger.Info().
		Stringer("handler", log.Func(handler)).
		Array("middlewares", log.Funcs(middlewares)).
		Msgf("Route: %s %s", method, route)
	return nil
}

func (s *httpServer) log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		logger := s.logger.With().Str("request_id", fmt.Sprintf("%016x", rand.Uint64())).Logger()
		// log request and response
		logger.Info().
			Str("method", request.Method).
			Stringer("url", request.URL).
			Msg("Request")
		start := time.Now()
		wrappedWriter := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		defer func(start time.Time, wrappedWriter middleware.WrapResponseWriter) {
			duration := time.Since(start)
			logger.Info().
				Int("status", wrappedWriter.Status()).
				Int("bytes", wrappedWriter.BytesWritten()).
				Dur("duration", duration).
				Msg("Response")
		}(start, wrappedWriter)
		// call the next handler
		next.ServeHTTP(wrappedWriter, request.WithContext(logger.WithContext(request.Context())))
	})
}

// Recoverer converts panics of the next handlers into errors classified with
// code, reports them to sink and answers with the code's status.
func Recoverer(sink *exception.Sink, code exception.Code) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				if failure := exception.Recover(recovered, code); failure != nil {
					failure.Set("method", request.Method).Set("url", request.URL.String())
					zerolog.Ctx(request.Context()).Error().Err(failure).Msg("Recovered from panic")
					report(request.Context(), sink, failure)
					// a handler that already wrote its headers gets a second,
					// superfluous WriteHeader here, as with chi's Recoverer
					if request.Header.Get("Connection") != "Upgrade" {
						_ = ServerErrorResponse{Cause: failure}.Render(writer)
					}
				}
			}()
			next.ServeHTTP(writer, request)
		})
	}
}

// HandlerFunc is an http handler that fails by returning an error.
type HandlerFunc func(writer http.ResponseWriter, request *http.Request) error

// Handler adapts handler to net/http. A returned error is classified with
// exception.Wrap, reported to sink and answered with a ServerErrorResponse.
func Handler(sink *exception.Sink, handler HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		err := handler(writer, request)
		if err == nil {
			return
		}
		failure := exception.Wrap(err).Set("method", request.Method).Set("url", request.URL.String())
		logger := zerolog.Ctx(request.Context())
		logger.Error().Err(failure).Msg("Request failed")
		report(request.Context(), sink, failure)
		if err := (ServerErrorResponse{Cause: failure}).Render(writer); err != nil {
			logger.Error().Err(err).Msg("Failed to render error")
		}
	}
}

func report(ctx context.Context, sink *exception.Sink, failure *exception.Error) {
	if sink == nil {
		return
	}
	if err := sink.Report(failure); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to report error")
	}
}
