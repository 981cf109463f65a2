// Package main demonstrates the exception package wired into an fx
// application: configuration, logging, report sink and an HTTP server.
//
// Run it with HTTP_SERVER_PORT=8080, then request /customers/42.
package main

import (
	"errors"
	"net/http"

	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/configuration"
	"github.com/thanhminhmr/go-exception/exception"
	exceptionhttp "github.com/thanhminhmr/go-exception/http"
	"github.com/thanhminhmr/go-exception/log"
	"github.com/thanhminhmr/go-exception/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var customerMissing = codes.Define("CUSTOMER_NOT_FOUND", "customer not found", http.StatusNotFound)

func main() {
	fx.New(
		fx.WithLogger(func(logger *zerolog.Logger, sink *exception.Sink) fxevent.Logger {
			return log.InitFxLogger(logger, sink)
		}),
		fx.Provide(
			log.ConsoleLogger,
			log.NewReportSink,
			configuration.Loader(&exception.Config{}),
			configuration.Loader(&exceptionhttp.ServerConfig{}),
			configuration.Loader(&exceptionhttp.ServerExtraConfig{}),
			exception.NewFactoryFromConfig,
			exceptionhttp.NewServer,
		),
		fx.Invoke(exception.SetDefault, routes),
	).Run()
}

func routes(router chi.Router, sink *exception.Sink) {
	router.Get("/customers/{id}", exceptionhttp.Handler(sink, getCustomer))
	router.Get("/panic", func(http.ResponseWriter, *http.Request) {
		exception.Panic("demonstration panic", codes.Internal)
	})
}

func getCustomer(_ http.ResponseWriter, request *http.Request) error {
	id := chi.URLParam(request, "id")
	failure := findCustomer(id)
	if failure == nil {
		return nil
	}
	err := postgres.Wrap("select customer", failure)
	// the repository already classified the failure, so this does not nest
	err = exception.WrapMessage("get customer", err)
	// a more specific classification at the service boundary does
	return exception.WrapFull("customer lookup failed", err, customerMissing).Set("id", id)
}

func findCustomer(id string) error {
	if id == "" {
		return errors.New("empty customer id")
	}
	return pgx.ErrNoRows
}
