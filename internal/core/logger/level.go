// Package logger provides logging utilities for the application.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// levelCache maps a logger name to its resolved zapcore.Level.
var levelCache sync.Map

var (
	levelConfigMu  sync.RWMutex
	levelConfigMap map[string]string
	globalLevel    = zapcore.InfoLevel
)

// InitLevelConfig installs the hierarchical level configuration.
// It is safe to call again when the configuration is reloaded.
func InitLevelConfig(levels map[string]string, defaultLevel zapcore.Level) {
	levelConfigMu.Lock()
	defer levelConfigMu.Unlock()
	levelConfigMap = levels
	globalLevel = defaultLevel
	levelCache = sync.Map{}
}

// GetLevelForName finds the level for a logger name.
// The exact name wins, then the closest dotted parent, then the global level.
// Matching is case sensitive.
func GetLevelForName(name string) zapcore.Level {
	if cached, ok := levelCache.Load(name); ok {
		return cached.(zapcore.Level)
	}

	level := computeLevelForName(name)
	levelCache.Store(name, level)

	return level
}

func computeLevelForName(name string) zapcore.Level {
	levelConfigMu.RLock()
	defer levelConfigMu.RUnlock()

	if len(levelConfigMap) == 0 || name == "" {
		return globalLevel
	}

	if levelStr, ok := levelConfigMap[name]; ok {
		if level, err := ParseLevel(levelStr); err == nil {
			return level
		}
		// invalid value, fall through to the parents
	}

	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i > 0; i-- {
		prefix := strings.Join(parts[:i], ".")
		if levelStr, ok := levelConfigMap[prefix]; ok {
			if level, err := ParseLevel(levelStr); err == nil {
				return level
			}
		}
	}

	return globalLevel
}

// ParseLevel parses a level string case-insensitively.
// Supported values: debug, info, warn, error.
func ParseLevel(levelStr string) (zapcore.Level, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(strings.ToLower(levelStr)))
	return level, err
}
