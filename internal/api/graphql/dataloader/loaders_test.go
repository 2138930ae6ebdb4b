package dataloader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xzzpig/graph-gateway/internal/api/graphql/dataloader"
	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/i18n"
	"github.com/xzzpig/graph-gateway/internal/loader"
)

func countingRegistry(calls *atomic.Int32) *loader.Registry {
	return loader.NewStaticRegistry(map[string]loader.Loader{
		"gravity": loader.Func(func(_ context.Context, path string, _ loader.Params) (*loader.Response, error) {
			calls.Add(1)
			return &loader.Response{Body: []byte(`"` + path + `"`)}, nil
		}),
	})
}

func TestNewLoaders(t *testing.T) {
	var calls atomic.Int32
	loaders := dataloader.NewLoaders(countingRegistry(&calls))

	backend, err := loaders.Backend("gravity")
	require.NoError(t, err)
	assert.NotNil(t, backend)

	_, err = loaders.Backend("positron")
	assert.ErrorIs(t, err, errs.ErrUnavailable)

	i18nErr, ok := i18n.IsI18nError(err)
	require.True(t, ok)
	assert.Equal(t, dataloader.CodeBackendNotConfigured, i18nErr.Code)
	assert.Equal(t, i18n.ErrBackendNotConfigured, i18nErr.MsgID)
	assert.Equal(t, "positron", i18nErr.Data["Backend"])
}

func TestBatcher_DeduplicatesConcurrentLoads(t *testing.T) {
	var calls atomic.Int32
	loaders := dataloader.NewLoaders(countingRegistry(&calls))
	backend, err := loaders.Backend("gravity")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := backend.Load(context.Background(), "/artist/banksy", loader.Params{"a": 1})
			assert.NoError(t, err)
			assert.JSONEq(t, `"/artist/banksy"`, string(resp.Body))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())

	resp, err := backend.Load(context.Background(), "/artist/kaws", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `"/artist/kaws"`, string(resp.Body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestBatcher_PassesParamsThrough(t *testing.T) {
	var got loader.Params
	b := dataloader.NewBatcher(loader.Func(func(_ context.Context, _ string, params loader.Params) (*loader.Response, error) {
		got = params
		return &loader.Response{Body: []byte(`[]`)}, nil
	}))

	_, err := b.Load(context.Background(), "/artworks", loader.Params{"size": 10, "total_count": true})
	require.NoError(t, err)
	assert.Equal(t, loader.Params{"size": 10, "total_count": true}, got)
}

func TestMiddleware(t *testing.T) {
	var calls atomic.Int32
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(dataloader.Middleware(countingRegistry(&calls)))

	var captured *dataloader.Loaders
	var token string
	router.GET("/test", func(c *gin.Context) {
		captured = dataloader.For(c.Request.Context())
		token, _ = loader.AccessTokenFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(loader.AccessTokenHeader, "user-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, captured)
	assert.Equal(t, "user-token", token)
}

func TestFor_PanicsWithoutMiddleware(t *testing.T) {
	assert.Panics(t, func() {
		dataloader.For(context.Background())
	})
}
