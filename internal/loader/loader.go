// Package loader fetches JSON from REST backends.
package loader

import (
	"context"
	"encoding/json"
	"net/http"
)

// Response is a backend response body with its headers.
type Response struct {
	Body    json.RawMessage `json:"body"`
	Headers http.Header     `json:"headers,omitempty"`
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Loader fetches path with params from a backend.
type Loader interface {
	Load(ctx context.Context, path string, params Params) (*Response, error)
}

// Func adapts a function to Loader.
type Func func(ctx context.Context, path string, params Params) (*Response, error)

// Load implements Loader.
func (f Func) Load(ctx context.Context, path string, params Params) (*Response, error) {
	return f(ctx, path, params)
}

// StaticFunc is a loader bound to a single endpoint. It ignores the path.
type StaticFunc func(ctx context.Context, params Params) (*Response, error)

// Load implements Loader.
func (f StaticFunc) Load(ctx context.Context, _ string, params Params) (*Response, error) {
	return f(ctx, params)
}

// Bind fixes the path of l.
func Bind(l Loader, path string) StaticFunc {
	return func(ctx context.Context, params Params) (*Response, error) {
		return l.Load(ctx, path, params)
	}
}

type ctxKey string

const accessTokenKey ctxKey = "loader.access_token"

// WithAccessToken stores the user access token forwarded to backends.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFromContext returns the access token stored in ctx, if any.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	return token, ok && token != ""
}
