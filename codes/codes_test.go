package codes_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/exception"
)

func TestCatalog_DefineAndLookup(t *testing.T) {
	t.Parallel()
	var catalog codes.Catalog

	defined := catalog.Define("CUSTOMER_NOT_FOUND", "customer not found", http.StatusNotFound)

	found, ok := catalog.Lookup("CUSTOMER_NOT_FOUND")
	require.True(t, ok)
	assert.Equal(t, defined, found)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", found.Code())
	assert.Equal(t, "customer not found", found.Message())
	assert.Equal(t, http.StatusNotFound, found.HTTPStatus())
	assert.Equal(t, "CUSTOMER_NOT_FOUND", found.String())

	_, ok = catalog.Lookup("MISSING")
	assert.False(t, ok)
}

func TestCatalog_DefinePanicsOnDuplicate(t *testing.T) {
	t.Parallel()
	var catalog codes.Catalog
	catalog.Define("DUP", "first", http.StatusConflict)

	assert.Panics(t, func() { catalog.Define("DUP", "second", http.StatusConflict) })
	assert.Panics(t, func() { catalog.Define("", "empty", http.StatusConflict) })
}

func TestCatalog_ConcurrentDefine(t *testing.T) {
	t.Parallel()
	var catalog codes.Catalog
	var waitGroup sync.WaitGroup
	for index := range 32 {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			catalog.Define(fmt.Sprintf("CODE_%02d", index), "concurrent", http.StatusInternalServerError)
		}()
	}
	waitGroup.Wait()

	all := catalog.All()
	require.Len(t, all, 32)
	for index, code := range all {
		assert.Equal(t, fmt.Sprintf("CODE_%02d", index), code.Code())
	}
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()
	found, ok := codes.Lookup("NOT_FOUND")
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, found)
	assert.Contains(t, codes.Default.All(), codes.Panic)
}

func TestCode_WorksWithWrapDeduplication(t *testing.T) {
	t.Parallel()
	original := exception.New(codes.NotFound)
	sameValue := codes.New("NOT_FOUND", "resource not found", http.StatusNotFound)

	assert.Same(t, original, exception.WrapCode(original, sameValue))
	assert.NotSame(t, original, exception.WrapCode(original, codes.Internal))
}

func TestCode_UnmarshalText(t *testing.T) {
	t.Parallel()
	var code codes.Code

	require.NoError(t, code.UnmarshalText([]byte("TIMEOUT")))
	assert.Equal(t, codes.Timeout, code)

	err := code.UnmarshalText([]byte("NOPE"))
	require.Error(t, err)
	assert.True(t, exception.HasCode(err, codes.InvalidConfig))
	assert.Equal(t, codes.Timeout, code)
}

func TestCode_ReportLine(t *testing.T) {
	t.Parallel()
	report := fmt.Sprintf("%+v", exception.NewFactory(exception.WithStackDepth(1)).New(codes.Conflict))

	assert.Contains(t, report, "\tcodes.Code:CONFLICT[CONFLICT-resource conflict]\n")
}
