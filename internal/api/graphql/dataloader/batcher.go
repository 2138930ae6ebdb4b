package dataloader

import (
	"context"
	"sync"

	"github.com/vikstrous/dataloadgen"
	"golang.org/x/sync/errgroup"

	"github.com/xzzpig/graph-gateway/internal/loader"
)

type request struct {
	path   string
	params loader.Params
}

// Batcher deduplicates backend requests within one GraphQL operation.
// Identical path and params hit the backend once; the distinct requests of a
// batch are fetched concurrently.
type Batcher struct {
	next    loader.Loader
	pending sync.Map // key -> request
	dl      *dataloadgen.Loader[string, *loader.Response]
}

// NewBatcher creates a Batcher in front of next.
func NewBatcher(next loader.Loader) *Batcher {
	b := &Batcher{next: next}
	b.dl = dataloadgen.NewLoader(b.fetch)
	return b
}

// Load implements loader.Loader.
func (b *Batcher) Load(ctx context.Context, path string, params loader.Params) (*loader.Response, error) {
	key := loader.Key(path, params)
	b.pending.LoadOrStore(key, request{path: path, params: params.Clone()})
	return b.dl.Load(ctx, key)
}

func (b *Batcher) fetch(ctx context.Context, keys []string) ([]*loader.Response, []error) {
	results := make([]*loader.Response, len(keys))
	errs := make([]error, len(keys))

	var g errgroup.Group
	for i, key := range keys {
		g.Go(func() error {
			v, _ := b.pending.Load(key)
			req := v.(request)
			results[i], errs[i] = b.next.Load(ctx, req.path, req.params)
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}
