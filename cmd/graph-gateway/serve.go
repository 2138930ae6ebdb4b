package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xzzpig/graph-gateway/internal/api"
	"github.com/xzzpig/graph-gateway/internal/api/graphql"
	"github.com/xzzpig/graph-gateway/internal/core/config"
	"github.com/xzzpig/graph-gateway/internal/core/logger"
	"github.com/xzzpig/graph-gateway/internal/i18n"
	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/paging"
	"github.com/xzzpig/graph-gateway/internal/schema"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL gateway",
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.InitLogger(logger.EnvironmentProduction, logger.Info, nil)
			logger.Named("main").Fatal("Failed to load config", zap.Error(err))
		}

		// Initialize Logger first
		logger.InitLogger(logger.Environment(cfg.App.Environment), logger.LogLevel(cfg.Log.Level), cfg.Log.Levels)
		defer logger.Sync()
		log := logger.Named("main")
		log.Info("Starting graph-gateway...")

		config.Watch(func(next *config.Config, err error) {
			if err != nil {
				log.Error("Failed to reload config", zap.Error(err))
				return
			}
			level, err := logger.ParseLevel(next.Log.Level)
			if err != nil {
				log.Error("Invalid log level in reloaded config", zap.Error(err))
				return
			}
			logger.InitLevelConfig(next.Log.Levels, level)
			log.Info("Log levels reloaded", zap.String("level", next.Log.Level))
		})

		if err := i18n.Init(); err != nil {
			log.Fatal("Failed to initialize i18n", zap.Error(err))
		}

		ctx := context.Background()
		registry, err := loader.NewRegistry(ctx, cfg)
		if err != nil {
			log.Fatal("Failed to initialize backends", zap.Error(err))
		}
		defer func() {
			if err := registry.Close(); err != nil {
				log.Error("Failed to close backends", zap.Error(err))
			}
		}()

		s, err := schema.New(schema.Dependencies{
			Paging: paging.Config{
				DefaultSize: cfg.Paging.DefaultSize,
				MaxSize:     cfg.Paging.MaxSize,
				MaxPages:    cfg.Paging.MaxPages,
			},
			Aggregate: schema.AggregateOptions{
				Concurrency: cfg.Aggregate.Concurrency,
				Timeout:     cfg.Aggregate.Timeout,
			},
			MaxDepth:       cfg.GraphQL.MaxDepth,
			MaxParallelism: cfg.GraphQL.MaxParallelism,
			PanicLogger:    graphql.PanicLogger{},
		})
		if err != nil {
			log.Fatal("Failed to build schema", zap.Error(err))
		}

		r := api.SetupRouter(api.RouterDeps{
			Config:   cfg,
			Schema:   s,
			Registry: registry,
		})

		addr := cfg.Address()
		log.Info("Server starting", zap.String("address", addr), zap.Strings("backends", registry.Names()))

		srv := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutdown signal received, stopping server...")

		// In-flight requests get 5 seconds to finish.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", zap.Error(err))
		}

		log.Info("Server exiting")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	config.BindFlags(serveCmd)
}
