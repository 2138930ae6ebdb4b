// Package logger provides logging utilities for the application.
package logger

import (
	"go.uber.org/zap/zapcore"
)

// levelFilterCore wraps a zapcore.Core and drops entries below level.
type levelFilterCore struct {
	zapcore.Core
	level zapcore.Level
}

// Enabled reports whether the given level should be logged.
func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.level
}

// Check must be overridden: the embedded Check would consult the embedded Enabled.
func (c *levelFilterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// With keeps the filter on derived cores.
func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), level: c.level}
}

var (
	_ zapcore.Core         = (*levelFilterCore)(nil)
	_ zapcore.LevelEnabler = (*levelFilterCore)(nil)
)
