package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		levelStr  string
		want      zapcore.Level
		wantError bool
	}{
		{name: "debug lowercase", levelStr: "debug", want: zapcore.DebugLevel},
		{name: "warn lowercase", levelStr: "warn", want: zapcore.WarnLevel},
		{name: "ERROR uppercase", levelStr: "ERROR", want: zapcore.ErrorLevel},
		{name: "Info mixed", levelStr: "Info", want: zapcore.InfoLevel},
		{name: "warning alias", levelStr: "warning", want: zapcore.WarnLevel},
		{name: "invalid level", levelStr: "invalid", wantError: true},
		{name: "trace unsupported", levelStr: "trace", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.levelStr)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetLevelForName(t *testing.T) {
	InitLevelConfig(map[string]string{
		"api":           "warn",
		"api.graphql":   "debug",
		"loader":        "error",
		"loader.broken": "nonsense",
	}, zapcore.InfoLevel)
	t.Cleanup(func() { InitLevelConfig(nil, zapcore.InfoLevel) })

	tests := []struct {
		name string
		want zapcore.Level
	}{
		{name: "api.graphql", want: zapcore.DebugLevel},
		{name: "api", want: zapcore.WarnLevel},
		{name: "api.router", want: zapcore.WarnLevel},
		{name: "api.graphql.errors", want: zapcore.DebugLevel},
		{name: "loader.broken", want: zapcore.ErrorLevel},
		{name: "schema", want: zapcore.InfoLevel},
		{name: "", want: zapcore.InfoLevel},
		{name: "API", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetLevelForName(tt.name))
		})
	}
}

func TestInitLevelConfig_ResetsCache(t *testing.T) {
	InitLevelConfig(map[string]string{"api": "debug"}, zapcore.InfoLevel)
	assert.Equal(t, zapcore.DebugLevel, GetLevelForName("api"))

	InitLevelConfig(map[string]string{"api": "error"}, zapcore.InfoLevel)
	assert.Equal(t, zapcore.ErrorLevel, GetLevelForName("api"))

	InitLevelConfig(nil, zapcore.InfoLevel)
}

func TestGetLevelForName_Concurrent(t *testing.T) {
	InitLevelConfig(map[string]string{"aggregate": "debug"}, zapcore.WarnLevel)
	t.Cleanup(func() { InitLevelConfig(nil, zapcore.InfoLevel) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, zapcore.DebugLevel, GetLevelForName("aggregate.pages"))
			assert.Equal(t, zapcore.WarnLevel, GetLevelForName("node"))
		}()
	}
	wg.Wait()
}
