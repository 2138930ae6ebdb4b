package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
)

func TestHTTPLoader_Load(t *testing.T) {
	var gotToken, gotQuery, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotToken = r.Header.Get(AccessTokenHeader)
		w.Header().Set("X-Total-Count", "42")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"banksy","name":"Banksy"}]`))
	}))
	defer srv.Close()

	l := NewHTTPLoader("gravity", srv.URL+"/api/v1/", time.Second)
	assert.Equal(t, "gravity", l.Name())

	ctx := WithAccessToken(context.Background(), "secret")
	resp, err := l.Load(ctx, "/artists", Params{"size": 1, "page": 1})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/artists", gotPath)
	assert.Equal(t, "page=1&size=1", gotQuery)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, "42", resp.Headers.Get("X-Total-Count"))
	assert.Equal(t, "Banksy", gjson.GetBytes(resp.Body, "0.name").String())
}

func TestHTTPLoader_NoTokenWithoutContext(t *testing.T) {
	var seen bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = r.Header[AccessTokenHeader]
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewHTTPLoader("gravity", srv.URL, 0).Load(context.Background(), "artist/x", nil)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestHTTPLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"not found", http.StatusNotFound, `{"error":"Artist Not Found"}`, errs.ErrNotFound},
		{"server error", http.StatusInternalServerError, `oops`, errs.ErrUnavailable},
		{"unauthorized", http.StatusUnauthorized, `{}`, errs.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"error":"forbidden"}`, errs.ErrUnauthorized},
		{"bad gateway", http.StatusBadGateway, ``, errs.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPLoader("gravity", srv.URL, time.Second).Load(context.Background(), "/artist/x", nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.body, httpErr.Body)
		})
	}
}

func TestHTTPLoader_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPLoader("gravity", srv.URL, time.Second).Load(context.Background(), "/", nil)
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestHTTPLoader_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPLoader("gravity", url, time.Second).Load(context.Background(), "/", nil)
	assert.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestHTTPLoader_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPLoader("gravity", srv.URL, time.Second).Load(ctx, "/", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBind(t *testing.T) {
	var gotPath string
	l := Func(func(_ context.Context, path string, _ Params) (*Response, error) {
		gotPath = path
		return &Response{Body: []byte(`[]`)}, nil
	})

	static := Bind(l, "/fair/frieze/partners")
	_, err := static.Load(context.Background(), "ignored", nil)
	require.NoError(t, err)
	assert.Equal(t, "/fair/frieze/partners", gotPath)
}
