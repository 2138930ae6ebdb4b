package graphql_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xzzpig/graph-gateway/internal/aggregate"
	"github.com/xzzpig/graph-gateway/internal/api/graphql"
	"github.com/xzzpig/graph-gateway/internal/api/graphql/dataloader"
	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/i18n"
	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/node"
	"github.com/xzzpig/graph-gateway/internal/paging"
)

func resolverError(err error) *gqlerrors.QueryError {
	qe := gqlerrors.Errorf("%s", err)
	qe.ResolverError = err
	qe.Path = []interface{}{"artist", "name"}
	return qe
}

func notConfigured(backend string) error {
	return i18n.NewError(i18n.ErrBackendNotConfigured, dataloader.CodeBackendNotConfigured).
		WithData(map[string]interface{}{"Backend": backend}).
		WithCause(errs.ErrUnavailable)
}

func TestPresentErrors_Codes(t *testing.T) {
	require.NoError(t, i18n.Init())

	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"invalid cursor", fmt.Errorf("after: %w", paging.ErrInvalidCursor), graphql.CodeInvalidCursor, "Invalid cursor"},
		{"malformed global id", fmt.Errorf("%w: %q", node.ErrMalformedGlobalID, "x"), graphql.CodeMalformedGlobalID, "Malformed global ID"},
		{"missing backend id", node.ErrMissingBackendID, graphql.CodeMissingBackendID, "Cannot build a global ID without a backend ID"},
		{"aggregation", &aggregate.Error{Stage: aggregate.StagePage, Page: 2, Err: errs.ErrUnavailable}, graphql.CodeAggregationFailed, "Failed to fetch all items"},
		{"not found", &loader.HTTPError{Backend: "gravity", StatusCode: http.StatusNotFound}, graphql.CodeNotFound, "The requested resource was not found"},
		{"backend status", &loader.HTTPError{Backend: "gravity", StatusCode: http.StatusBadGateway}, graphql.CodeBackendUnavailable, "Backend gravity responded with status 502"},
		{"backend unauthorized", &loader.HTTPError{Backend: "gravity", StatusCode: http.StatusUnauthorized}, graphql.CodeUnauthorized, "You are not authorized to perform this action"},
		{"backend forbidden", fmt.Errorf("me: %w", &loader.HTTPError{Backend: "gravity", StatusCode: http.StatusForbidden}), graphql.CodeUnauthorized, "You are not authorized to perform this action"},
		{"backend not configured", notConfigured("positron"), dataloader.CodeBackendNotConfigured, "Backend positron is not configured"},
		{"aggregation of unconfigured backend", &aggregate.Error{Stage: aggregate.StageProbe, Err: notConfigured("positron")}, graphql.CodeAggregationFailed, "Failed to fetch all items"},
		{"unavailable", fmt.Errorf("dial: %w", errs.ErrUnavailable), graphql.CodeBackendUnavailable, "A backend service is unavailable"},
		{"invalid input", fmt.Errorf("first: %w", errs.ErrInvalidInput), graphql.CodeBadUserInput, "Invalid input"},
		{"unauthorized", errs.ErrUnauthorized, graphql.CodeUnauthorized, "You are not authorized to perform this action"},
		{"i18n error", i18n.NewError(i18n.ErrMissingQuery, "CUSTOM"), "CUSTOM", "The request did not contain a query"},
		{"unknown", errors.New("boom"), graphql.CodeInternal, "An error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graphql.PresentErrors(context.Background(), []*gqlerrors.QueryError{resolverError(tt.err)})

			require.Len(t, out, 1)
			assert.Equal(t, tt.code, out[0].Extensions["code"])
			assert.Equal(t, tt.message, out[0].Message)
			assert.Equal(t, []interface{}{"artist", "name"}, out[0].Path)
		})
	}
}

func TestPresentErrors_TranslatesForLocale(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocalizer(context.Background(), i18n.NewLocalizer("zh-CN"))
	err := &loader.HTTPError{Backend: "gravity", StatusCode: http.StatusNotFound}

	out := graphql.PresentErrors(ctx, []*gqlerrors.QueryError{resolverError(err)})

	assert.Equal(t, "请求的资源不存在", out[0].Message)
	assert.Equal(t, graphql.CodeNotFound, out[0].Extensions["code"])
}

func TestPresentErrors_MasksPanics(t *testing.T) {
	require.NoError(t, i18n.Init())

	qe := gqlerrors.Errorf("panic occurred: runtime error: index out of range")
	qe.Path = []interface{}{"artist"}

	out := graphql.PresentErrors(context.Background(), []*gqlerrors.QueryError{qe})

	assert.Equal(t, "An error occurred", out[0].Message)
	assert.Equal(t, graphql.CodeInternal, out[0].Extensions["code"])
}

func TestPresentErrors_KeepsValidationErrors(t *testing.T) {
	qe := gqlerrors.Errorf("Cannot query field \"nope\" on type \"Query\".")

	out := graphql.PresentErrors(context.Background(), []*gqlerrors.QueryError{qe, nil})

	assert.Equal(t, "Cannot query field \"nope\" on type \"Query\".", out[0].Message)
	assert.Nil(t, out[0].Extensions)
}

func TestPresentErrors_KeepsExistingExtensions(t *testing.T) {
	require.NoError(t, i18n.Init())

	qe := resolverError(errs.ErrNotFound)
	qe.Extensions = map[string]interface{}{"backend": "gravity"}

	out := graphql.PresentErrors(context.Background(), []*gqlerrors.QueryError{qe})

	assert.Equal(t, "gravity", out[0].Extensions["backend"])
	assert.Equal(t, graphql.CodeNotFound, out[0].Extensions["code"])
}

func TestPanicLogger_DoesNotPanic(t *testing.T) {
	panicValues := []interface{}{"string panic", errors.New("error panic"), 42, nil}

	for _, v := range panicValues {
		assert.NotPanics(t, func() {
			graphql.PanicLogger{}.LogPanic(context.Background(), v)
		})
	}
}
