// Package logger provides logging utilities for the application.
package logger

import (
	"log"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// logger is the process-wide base logger. Use Named to obtain a module logger.
var logger = zap.NewNop()

// Environment represents the application environment type.
type Environment string

const (
	// EnvironmentDevelopment represents the development environment.
	EnvironmentDevelopment Environment = "development"
	// EnvironmentProduction represents the production environment.
	EnvironmentProduction Environment = "production"
)

// LogLevel represents the logging level type.
type LogLevel string

const (
	// LogLevelDebug represents the debug logging level.
	LogLevelDebug LogLevel = "debug"
	// Info represents the info logging level.
	Info LogLevel = "info"
	// Warn represents the warn logging level.
	Warn LogLevel = "warn"
	// Error represents the error logging level.
	Error LogLevel = "error"
)

// InitLogger initializes the global logger with the specified environment and log level.
// levels maps dotted module names (e.g. "api.graphql") to per-module levels.
func InitLogger(environment Environment, logLevel LogLevel, levels map[string]string) {
	var cfg zap.Config

	if environment == EnvironmentDevelopment {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// The base core lets everything through; levelFilterCore decides per module.
	cfg.Level.SetLevel(zapcore.DebugLevel)

	built, err := cfg.Build()
	if err != nil {
		log.Printf("Failed to initialize zap logger: %v", err)
		os.Exit(1)
	}
	logger = built

	globalLevel := getZapLevel(string(logLevel))
	InitLevelConfig(levels, globalLevel)

	root := Named("")

	// Redirect standard log to zap
	zap.RedirectStdLog(root)

	// Redirect slog to zap
	slog.SetDefault(slog.New(zapslog.NewHandler(root.Core())))
}

// Named returns a child logger whose level follows the hierarchical level config.
func Named(name string) *zap.Logger {
	level := GetLevelForName(name)
	l := logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelFilterCore{Core: core, level: level}
	}))
	if name == "" {
		return l
	}
	return l.Named(name)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = logger.Sync()
}

func getZapLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
