// Package context provides request context utilities for the API.
package context

import (
	"errors"

	"github.com/gin-gonic/gin"
)

func getContextValue[T any](c *gin.Context, key string) (T, error) {
	var zero T
	val, exists := c.Get(key)
	if !exists {
		return zero, errors.New(key + " not initialized")
	}
	v, ok := val.(T)
	if !ok {
		return zero, errors.New(key + " has an unexpected type")
	}
	return v, nil
}

// GetRequestID retrieves the request ID from the gin context.
// Returns an error if RequestIDMiddleware did not run.
func GetRequestID(c *gin.Context) (string, error) {
	return getContextValue[string](c, ContextKeyRequestID)
}

// GetLocale retrieves the negotiated locale from the gin context.
func GetLocale(c *gin.Context) (string, error) {
	return getContextValue[string](c, ContextKeyLocale)
}
