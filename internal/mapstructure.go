package internal

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// SplitSemicolonsDecodeHookFunc decodes environment strings into typed
// configuration fields. Values bound to slices are split on semicolons.
var SplitSemicolonsDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(
	splitValueBySemicolonsIfTargetIsSlice,
	mapstructure.TextUnmarshallerHookFunc(),
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToBasicTypeHookFunc(),
	mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
	mapstructure.StringToURLHookFunc(),
	mapstructure.StringToIPHookFunc(),
	mapstructure.StringToIPNetHookFunc(),
	mapstructure.StringToNetIPAddrHookFunc(),
	mapstructure.StringToNetIPAddrPortHookFunc(),
	mapstructure.StringToNetIPPrefixHookFunc(),
)

func splitValueBySemicolonsIfTargetIsSlice(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to.Kind() != reflect.Slice {
		return data, nil
	}
	raw := data.(string)
	if raw == "" {
		return []string{}, nil
	}
	return strings.Split(raw, ";"), nil
}
