// Package aggregate turns a paginated backend endpoint into a complete
// collection: it probes the total count, then fetches every page concurrently.
//
// The probe and the page requests are separate round-trips, so the number of
// items returned may differ from the probed count when the collection changes
// in between.
package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/paging"
)

// ErrAggregation marks every failure of All.
var ErrAggregation = fmt.Errorf("aggregation failed: %w", errs.ErrSystem)

// Stage names the step of All that failed.
type Stage string

// Stages of an aggregation.
const (
	StageProbe Stage = "probe"
	StagePage  Stage = "page"
)

// Error is a failed aggregation. Page is zero for the probe stage and when
// the deadline expired after every page returned.
type Error struct {
	Stage Stage
	Page  int
	Err   error
}

func (e *Error) Error() string {
	if e.Stage == StageProbe {
		return fmt.Sprintf("aggregate: count probe failed: %v", e.Err)
	}
	if e.Page == 0 {
		return fmt.Sprintf("aggregate: %v", e.Err)
	}
	return fmt.Sprintf("aggregate: page %d failed: %v", e.Page, e.Err)
}

// Unwrap exposes both ErrAggregation and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrAggregation, e.Err}
}

// Options configure a single aggregation.
type Options struct {
	// Path is passed to the loader. Empty for loaders bound to one endpoint.
	Path string
	// Params are merged under the paging parameters of every request.
	Params loader.Params
	// PageSize defaults to Params["size"], then paging.DefaultPageSize.
	PageSize int
	// Concurrency caps in-flight page requests. Zero or less is unbounded.
	Concurrency int
	// Timeout bounds the whole aggregation when positive.
	Timeout time.Duration
}

func (o Options) pageSize() int {
	if o.PageSize > 0 {
		return o.PageSize
	}
	if size := o.Params.Int("size", 0); size > 0 {
		return size
	}
	return paging.DefaultPageSize
}

// All fetches every item of a paginated collection in page order.
func All(ctx context.Context, l loader.Loader, opts Options) ([]json.RawMessage, error) {
	bodies, err := fetchPages(ctx, l, opts)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, b := range bodies {
		total += len(b)
	}
	out := make([]json.RawMessage, 0, total)
	for _, b := range bodies {
		out = append(out, b...)
	}
	return out, nil
}

// AllOf is All with every item decoded into T.
func AllOf[T any](ctx context.Context, l loader.Loader, opts Options) ([]T, error) {
	bodies, err := fetchPages(ctx, l, opts)
	if err != nil {
		return nil, err
	}

	var out []T
	for i, items := range bodies {
		for _, item := range items {
			var v T
			if err := json.Unmarshal(item, &v); err != nil {
				return nil, &Error{Stage: StagePage, Page: i + 1, Err: err}
			}
			out = append(out, v)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// fetchPages returns the items of every page, indexed by page number minus one.
func fetchPages(ctx context.Context, l loader.Loader, opts Options) ([][]json.RawMessage, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	size := opts.pageSize()

	probe, err := l.Load(ctx, opts.Path, opts.Params.Merge(loader.Params{
		"page":        1,
		"size":        0,
		"total_count": true,
	}))
	if err != nil {
		return nil, &Error{Stage: StageProbe, Err: err}
	}
	count := totalCount(probe)
	pages := paging.TotalPages(count, size)
	if count == 0 {
		pages = 0
	}

	bodies := make([][]json.RawMessage, pages)
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i := range pages {
		page := i + 1
		g.Go(func() error {
			resp, err := l.Load(gctx, opts.Path, opts.Params.Merge(loader.Params{
				"page": page,
				"size": size,
			}))
			if err != nil {
				return &Error{Stage: StagePage, Page: page, Err: err}
			}
			items, err := splitArray(resp.Body)
			if err != nil {
				return &Error{Stage: StagePage, Page: page, Err: err}
			}
			bodies[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Loaders that ignore ctx can return after the deadline with a full result.
	if err := ctx.Err(); err != nil {
		return nil, &Error{Stage: StagePage, Err: err}
	}
	return bodies, nil
}

func totalCount(resp *loader.Response) int {
	if resp == nil {
		return 0
	}
	if n, ok := paging.TotalCountFromHeaders(resp.Headers); ok {
		return n
	}
	return 0
}

func splitArray(body json.RawMessage) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got %s", kind(result))
	}
	var items []json.RawMessage
	result.ForEach(func(_, value gjson.Result) bool {
		items = append(items, json.RawMessage(value.Raw))
		return true
	})
	return items, nil
}

func kind(r gjson.Result) string {
	if r.IsObject() {
		return "an object"
	}
	if r.Type == gjson.Null {
		return "null"
	}
	return strconv.Quote(r.Type.String())
}
