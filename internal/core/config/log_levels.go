package config

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// LogLevels represents hierarchical log level configuration.
// Keys are module paths (e.g., "api.graphql", "loader") and values are log levels.
type LogLevels map[string]string

// LogLevelsDecodeHook returns a DecodeHookFunc that skips decoding for LogLevels.
// viper turns dotted keys into nested maps, which would fail to decode; the flat
// map is rebuilt afterwards by readLogLevels.
func LogLevelsDecodeHook() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(LogLevels{}) {
			return data, nil
		}
		return make(LogLevels), nil
	}
}

// readLogLevels flattens the nested "log.levels" tree back into dotted keys.
func readLogLevels() LogLevels {
	levels := make(LogLevels)
	raw, ok := viper.Get("log.levels").(map[string]interface{})
	if !ok {
		return levels
	}
	flattenLevels("", raw, levels)
	return levels
}

func flattenLevels(prefix string, node map[string]interface{}, out LogLevels) {
	for key, value := range node {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[name] = strings.TrimSpace(v)
		case map[string]interface{}:
			flattenLevels(name, v, out)
		}
	}
}
