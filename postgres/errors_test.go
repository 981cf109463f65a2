package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/exception"
	"github.com/thanhminhmr/go-exception/postgres"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		code exception.Code
	}{
		{name: "nil"},
		{name: "no rows", err: pgx.ErrNoRows, code: codes.NotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), code: codes.NotFound},
		{name: "unique", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, code: codes.Conflict},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, code: codes.Conflict},
		{name: "not null", err: &pgconn.PgError{Code: pgerrcode.NotNullViolation}, code: codes.InvalidInput},
		{name: "foreign key", err: &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, code: codes.InvalidInput},
		{name: "bad data", err: &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, code: codes.InvalidInput},
		{name: "canceled", err: &pgconn.PgError{Code: pgerrcode.QueryCanceled}, code: codes.Timeout},
		{name: "privilege", err: &pgconn.PgError{Code: pgerrcode.InsufficientPrivilege}, code: codes.Forbidden},
		{name: "too many connections", err: &pgconn.PgError{Code: pgerrcode.TooManyConnections}, code: codes.Unavailable},
		{name: "shutdown", err: &pgconn.PgError{Code: pgerrcode.AdminShutdown}, code: codes.Unavailable},
		{name: "syntax", err: &pgconn.PgError{Code: pgerrcode.SyntaxError}, code: codes.Database},
		{name: "deadline", err: context.DeadlineExceeded, code: codes.Timeout},
		{name: "wrapped deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), code: codes.Timeout},
		{name: "other", err: errors.New("driver failure"), code: codes.Database},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, postgres.Classify(tt.err))
		})
	}
}

func TestWrap_AttachesServerDetails(t *testing.T) {
	t.Parallel()
	pgError := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           pgerrcode.UniqueViolation,
		Message:        "duplicate key value violates unique constraint",
		Detail:         "Key (email)=(a@b.c) already exists.",
		SchemaName:     "public",
		TableName:      "customer",
		ConstraintName: "customer_email_key",
	}

	wrapped := postgres.Wrap("insert customer", pgError)

	require.NotNil(t, wrapped)
	assert.Equal(t, exception.Code(codes.Conflict), wrapped.Code())
	assert.Equal(t, "insert customer", wrapped.Message())
	assert.Same(t, pgError, wrapped.Unwrap())
	assert.Equal(t, map[string]any{
		"sqlstate":   pgerrcode.UniqueViolation,
		"severity":   "ERROR",
		"schema":     "public",
		"table":      "customer",
		"constraint": "customer_email_key",
		"detail":     "Key (email)=(a@b.c) already exists.",
	}, wrapped.Properties())
}

func TestWrap_Nil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, postgres.Wrap("nothing", nil))
}

func TestWrap_KeepsAlreadyClassified(t *testing.T) {
	t.Parallel()
	existing := exception.WrapFull("lookup", pgx.ErrNoRows, codes.NotFound)

	assert.Same(t, existing, postgres.Wrap("again", existing))
}
