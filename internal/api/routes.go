package api

import (
	"github.com/gin-gonic/gin"
	gqlgo "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/xzzpig/graph-gateway/internal/api/graphql"
	"github.com/xzzpig/graph-gateway/internal/api/handlers"
	"github.com/xzzpig/graph-gateway/internal/core/config"
	"github.com/xzzpig/graph-gateway/internal/core/logger"
	"github.com/xzzpig/graph-gateway/internal/loader"
)

// GraphQLPath is where the schema is served.
const GraphQLPath = "/graphql"

// RouterDeps contains all dependencies required for setting up API routes.
type RouterDeps struct {
	Config   *config.Config
	Schema   *gqlgo.Schema
	Registry *loader.Registry
}

// routesLog returns a named logger for the api.routes package.
func routesLog() *zap.Logger {
	return logger.Named("api.routes")
}

// RegisterRoutes registers all routes on the engine.
func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	r.GET("/health", handlers.HealthHandler(deps.Registry.Names()))
	r.GET("/schema.graphql", handlers.SchemaHandler)

	gql := graphql.NewHandler(deps.Schema)
	r.GET(GraphQLPath, gql.ServeGin)
	r.POST(GraphQLPath, gql.ServeGin)

	if deps.Config.GraphQL.Playground {
		r.GET("/playground", graphql.PlaygroundHandler(GraphQLPath))
		routesLog().Info("GraphQL playground enabled", zap.String("path", "/playground"))
	}

	r.NoRoute(handlers.NotFoundHandler)
}
