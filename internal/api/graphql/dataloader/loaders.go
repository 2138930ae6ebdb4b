// Package dataloader provides per-request batching of backend loads.
package dataloader

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/i18n"
	"github.com/xzzpig/graph-gateway/internal/loader"
)

// CodeBackendNotConfigured is the error code for a lookup of an unknown backend.
const CodeBackendNotConfigured = "BACKEND_NOT_CONFIGURED"

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders holds a batcher per backend for a single request.
type Loaders struct {
	backends map[string]*Batcher
}

// NewLoaders creates a new Loaders instance for the request.
func NewLoaders(registry *loader.Registry) *Loaders {
	names := registry.Names()
	l := &Loaders{backends: make(map[string]*Batcher, len(names))}
	for _, name := range names {
		backend, _ := registry.Get(name)
		l.backends[name] = NewBatcher(backend)
	}
	return l
}

// Backend returns the batched loader for the named backend.
func (l *Loaders) Backend(name string) (loader.Loader, error) {
	b, ok := l.backends[name]
	if !ok {
		return nil, i18n.NewError(i18n.ErrBackendNotConfigured, CodeBackendNotConfigured).
			WithData(map[string]interface{}{"Backend": name}).
			WithCause(errs.ErrUnavailable)
	}
	return b, nil
}

// Middleware injects dataloaders and the caller's access token into the request context.
func Middleware(registry *loader.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithLoaders(c.Request.Context(), NewLoaders(registry))
		ctx = loader.WithAccessToken(ctx, c.GetHeader(loader.AccessTokenHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// WithLoaders stores loaders in ctx.
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// For retrieves the dataloaders from context.
func For(ctx context.Context) *Loaders {
	loaders, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok {
		panic("dataloader: loaders not found in context - did you forget to add dataloader.Middleware?")
	}
	return loaders
}
