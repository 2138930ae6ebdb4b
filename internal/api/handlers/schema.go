package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xzzpig/graph-gateway/internal/schema"
)

// SchemaHandler serves the validated schema SDL.
func SchemaHandler(c *gin.Context) {
	if _, err := schema.Validate(); err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/graphql; charset=utf-8", []byte(schema.SDL()))
}

// HealthHandler reports liveness and the configured backends.
func HealthHandler(backends []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backends": backends})
	}
}
