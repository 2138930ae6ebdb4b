// Package api provides HTTP API routes and server setup.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apicontext "github.com/xzzpig/graph-gateway/internal/api/context"
	"github.com/xzzpig/graph-gateway/internal/api/graphql/dataloader"
	"github.com/xzzpig/graph-gateway/internal/core/logger"
	"github.com/xzzpig/graph-gateway/internal/loader"
)

// SetupRouter builds the gin engine with the middleware chain and all routes.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Middleware
	r.Use(apicontext.RequestIDMiddleware())
	r.Use(ginLogger(logger.Named("api.http")))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", loader.AccessTokenHeader, apicontext.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", apicontext.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(apicontext.LocaleMiddleware())
	r.Use(dataloader.Middleware(deps.Registry))

	RegisterRoutes(r, deps)

	return r
}

func ginLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		requestID, _ := apicontext.GetRequestID(c)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors.Errors() {
				l.Error(e, zap.String("requestID", requestID))
			}
			return
		}
		l.Info(path,
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String("requestID", requestID),
			zap.Duration("latency", latency),
		)
	}
}
