// Package postgres classifies errors returned by pgx so that repositories can
// hand classified errors to the layers above them.
package postgres

import (
	"context"
	"errors"

	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/exception"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classify returns the code matching a pgx error, or nil if err is nil.
func Classify(err error) exception.Code {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return codes.NotFound
	}
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		return classifySQLState(pgError.Code)
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return codes.Timeout
	}
	var connectError *pgconn.ConnectError
	if errors.As(err, &connectError) {
		return codes.Unavailable
	}
	return codes.Database
}

func classifySQLState(sqlState string) exception.Code {
	switch sqlState {
	case pgerrcode.UniqueViolation, pgerrcode.ExclusionViolation,
		pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.LockNotAvailable:
		return codes.Conflict
	case pgerrcode.QueryCanceled:
		return codes.Timeout
	case pgerrcode.InsufficientPrivilege, pgerrcode.InvalidPassword, pgerrcode.InvalidAuthorizationSpecification:
		return codes.Forbidden
	}
	switch {
	case pgerrcode.IsIntegrityConstraintViolation(sqlState), pgerrcode.IsDataException(sqlState):
		return codes.InvalidInput
	case pgerrcode.IsConnectionException(sqlState),
		pgerrcode.IsInsufficientResources(sqlState),
		pgerrcode.IsOperatorIntervention(sqlState):
		return codes.Unavailable
	}
	return codes.Database
}

// Wrap classifies err with Classify and wraps it with message. Server-side
// details of a PostgreSQL error are attached as properties. It returns nil if
// err is nil; that nil is a typed *exception.Error, so check err before
// returning the result as an error.
//
//	if err := row.Scan(&customer.Name); err != nil {
//		return postgres.Wrap("load customer", err).Set("id", id)
//	}
func Wrap(message string, err error) *exception.Error {
	if err == nil {
		return nil
	}
	wrapped := exception.WrapFull(message, err, Classify(err))
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		wrapped.Set("sqlstate", pgError.Code).Set("severity", pgError.Severity)
		setIfPresent(wrapped, "schema", pgError.SchemaName)
		setIfPresent(wrapped, "table", pgError.TableName)
		setIfPresent(wrapped, "column", pgError.ColumnName)
		setIfPresent(wrapped, "constraint", pgError.ConstraintName)
		setIfPresent(wrapped, "detail", pgError.Detail)
	}
	return wrapped
}

func setIfPresent(err *exception.Error, name string, value string) {
	if value != "" {
		err.Set(name, value)
	}
}
