package schema

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/xzzpig/graph-gateway/internal/api/graphql/dataloader"
	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/paging"
)

// GravityBackend is the backend serving the core art-world entities.
const GravityBackend = "gravity"

func gravity(ctx context.Context) (loader.Loader, error) {
	return dataloader.For(ctx).Backend(GravityBackend)
}

// path joins escaped segments into a backend path.
func path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// loadOne fetches a single entity. A missing entity is (nil, nil).
func loadOne[T any](ctx context.Context, p string, params loader.Params) (*T, error) {
	l, err := gravity(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := l.Load(ctx, p, params)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var v T
	if err := resp.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	return &v, nil
}

// loadList fetches a JSON array.
func loadList[T any](ctx context.Context, p string, params loader.Params) ([]T, error) {
	items, _, err := loadPage[T](ctx, p, params)
	return items, err
}

// loadPage fetches a JSON array and the total count reported alongside it.
func loadPage[T any](ctx context.Context, p string, params loader.Params) ([]T, *int, error) {
	l, err := gravity(ctx)
	if err != nil {
		return nil, nil, err
	}
	resp, err := l.Load(ctx, p, params)
	if err != nil {
		return nil, nil, err
	}
	var items []T
	if err := resp.Decode(&items); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	var total *int
	if n, ok := paging.TotalCountFromHeaders(resp.Headers); ok {
		total = &n
	}
	return items, total, nil
}

// pageParams are the backend paging parameters for pp, asking for the total count.
func pageParams(pp paging.PageParams) loader.Params {
	return loader.Params{
		"page":        pp.Page,
		"size":        pp.Size,
		"total_count": true,
	}
}
