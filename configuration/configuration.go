package configuration

import (
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-exception/codes"
	"github.com/thanhminhmr/go-exception/exception"
	"github.com/thanhminhmr/go-exception/internal"

	"github.com/go-viper/mapstructure/v2"
)

var (
	defaultsMutex  sync.RWMutex
	globalDefaults = make(map[string]string)
)

// SetDefault registers the value used when key is found neither in the .env
// file nor in the process environment. Packages usually call it from init.
func SetDefault(key string, value string) {
	defaultsMutex.Lock()
	defer defaultsMutex.Unlock()
	globalDefaults[key] = value
}

// Load decodes the environment into config and validates it. Variables are
// looked up with the joined prefixes followed by an underscore, and the
// prefix is stripped before matching the `env` tags.
//
// Sources, from lowest to highest priority: defaults, the .env file in the
// working directory, the process environment.
func Load[T any](config *T, prefixes ...string) error {
	return LoadMap(config, environment(), prefixes...)
}

// LoadMap is Load with an explicit set of variables instead of the .env file
// and the process environment. Defaults still apply.
func LoadMap[T any](config *T, values map[string]string, prefixes ...string) error {
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		DecodeHook:       internal.SplitSemicolonsDecodeHookFunc,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return exception.WrapFull("create configuration decoder", err, codes.Internal)
	}
	if err := decoder.Decode(withPrefix(values, prefix)); err != nil {
		return exception.WrapFull("decode configuration", err, codes.InvalidConfig).Set("prefix", prefix)
	}
	if err := internal.Validator.Struct(config); err != nil {
		return exception.WrapFull("validate configuration", err, codes.InvalidConfig).Set("prefix", prefix)
	}
	return nil
}

// Loader returns a constructor suitable for fx.Provide.
func Loader[T any](config *T, prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		err := Load(config, prefixes...)
		return config, err
	}
}

func environment() map[string]string {
	values := make(map[string]string)
	// .env file have higher priority than defaults
	if bytes, err := os.ReadFile(".env"); err == nil {
		saveEnvironments(values, strings.Split(string(bytes), "\n"))
	}
	// os.Environ() have the highest priority
	saveEnvironments(values, os.Environ())
	return values
}

func saveEnvironments(values map[string]string, lines []string) {
	for _, line := range lines {
		if key, value, found := strings.Cut(line, "="); found {
			values[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
}

func withPrefix(values map[string]string, prefix string) map[string]string {
	environments := make(map[string]string)
	defaultsMutex.RLock()
	for key, value := range globalDefaults {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	defaultsMutex.RUnlock()
	for key, value := range values {
		if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
			environments[fixedKey] = value
		}
	}
	return environments
}
