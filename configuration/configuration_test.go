package configuration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/configuration"
	"github.com/thanhminhmr/go-exception/exception"
)

type testConfig struct {
	Depth   uint16        `env:"DEPTH" validate:"min=1,max=64"`
	Names   []string      `env:"NAMES"`
	Timeout time.Duration `env:"TIMEOUT"`
	Code    codes.Code    `env:"CODE"`
}

func init() {
	configuration.SetDefault("TEST_DEPTH", "8")
	configuration.SetDefault("TEST_CODE", "INTERNAL")
}

func TestLoadMap_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()
	var config testConfig

	err := configuration.LoadMap(&config, map[string]string{
		"TEST_NAMES":   "a;b;c",
		"TEST_TIMEOUT": "3s",
		"OTHER_DEPTH":  "99",
	}, "TEST")

	require.NoError(t, err)
	assert.Equal(t, uint16(8), config.Depth)
	assert.Equal(t, []string{"a", "b", "c"}, config.Names)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.Equal(t, codes.Internal, config.Code)
}

func TestLoadMap_ValidationFailureIsClassified(t *testing.T) {
	t.Parallel()
	var config testConfig

	err := configuration.LoadMap(&config, map[string]string{"TEST_DEPTH": "100"}, "TEST")

	require.Error(t, err)
	assert.True(t, exception.HasCode(err, codes.InvalidConfig))
	var classified *exception.Error
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, map[string]any{"prefix": "TEST_"}, classified.Properties())
}

func TestLoadMap_UnknownCode(t *testing.T) {
	t.Parallel()
	var config testConfig

	err := configuration.LoadMap(&config, map[string]string{"TEST_CODE": "NO_SUCH_CODE"}, "TEST")

	require.Error(t, err)
	assert.True(t, exception.HasCode(err, codes.InvalidConfig))
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("ENVTEST_DEPTH", "12")
	var config testConfig

	require.NoError(t, configuration.Load(&config, "ENVTEST"))
	assert.Equal(t, uint16(12), config.Depth)
}

func TestLoader(t *testing.T) {
	t.Setenv("LOADER_EXCEPTION_STACK_DEPTH", "4")

	config, err := configuration.Loader(&exception.Config{}, "LOADER")()

	require.NoError(t, err)
	assert.Equal(t, uint16(4), config.StackDepth)
}
