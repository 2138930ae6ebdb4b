// Package config loads the gateway configuration with viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BackendConfig describes one REST backend wrapped by the gateway.
type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the full gateway configuration.
type Config struct {
	Server struct {
		Port int    `mapstructure:"port"`
		Host string `mapstructure:"host"`
	} `mapstructure:"server"`
	Log struct {
		Level  string    `mapstructure:"level"`
		Levels LogLevels `mapstructure:"levels"`
	} `mapstructure:"log"`
	App struct {
		Environment string `mapstructure:"environment"`
	} `mapstructure:"app"`
	GraphQL struct {
		MaxDepth       int  `mapstructure:"max_depth"`
		MaxParallelism int  `mapstructure:"max_parallelism"`
		Playground     bool `mapstructure:"playground"`
	} `mapstructure:"graphql"`
	Paging struct {
		DefaultSize int `mapstructure:"default_size"`
		MaxSize     int `mapstructure:"max_size"`
		MaxPages    int `mapstructure:"max_pages"`
	} `mapstructure:"paging"`
	Aggregate struct {
		Concurrency int           `mapstructure:"concurrency"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"aggregate"`
	Cache struct {
		Enabled       bool          `mapstructure:"enabled"`
		TTL           time.Duration `mapstructure:"ttl"`
		MemorySize    int           `mapstructure:"memory_size"`
		RedisAddr     string        `mapstructure:"redis_addr"`
		RedisDB       int           `mapstructure:"redis_db"`
		RedisPassword string        `mapstructure:"redis_password"`
	} `mapstructure:"cache"`
	Backends map[string]BackendConfig `mapstructure:"backends"`
}

// IsDevelopment reports whether the gateway runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Address returns the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UsesRedis reports whether a shared Redis response cache is configured.
func (c *Config) UsesRedis() bool {
	return c.Cache.Enabled && c.Cache.RedisAddr != ""
}

// Load reads the configuration from cfgFile, or ./config.toml when empty.
// An explicit file that does not exist is an error; a missing default file is not.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("GRAPHGW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return decode()
}

// Watch reloads the configuration whenever the config file changes and hands
// the new value to onChange. Decode failures are passed as a nil config.
func Watch(onChange func(*Config, error)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(decode())
	})
	viper.WatchConfig()
}

// BindFlags binds the server flags of cmd to their config keys.
func BindFlags(cmd *cobra.Command) {
	cmd.Flags().Int("port", 3000, "Port to run the server on")
	cmd.Flags().String("host", "0.0.0.0", "Host to bind the server to")
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
}

func decode() (*Config, error) {
	var cfg Config
	hook := mapstructure.ComposeDecodeHookFunc(
		LogLevelsDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Log.Levels = readLogLevels()
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("app.environment", "production")
	viper.SetDefault("graphql.max_depth", 15)
	viper.SetDefault("graphql.max_parallelism", 10)
	viper.SetDefault("graphql.playground", true)
	viper.SetDefault("paging.default_size", 25)
	viper.SetDefault("paging.max_size", 100)
	viper.SetDefault("paging.max_pages", 100)
	viper.SetDefault("aggregate.concurrency", 0)
	viper.SetDefault("aggregate.timeout", "30s")
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("cache.memory_size", 1000)
	viper.SetDefault("cache.redis_db", 0)
}
