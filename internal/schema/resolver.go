package schema

import (
	"context"

	"github.com/xzzpig/graph-gateway/internal/node"
	"github.com/xzzpig/graph-gateway/internal/paging"
)

// Resolver is the root resolver.
type Resolver struct {
	paging    paging.Config
	aggregate AggregateOptions
	nodes     *node.Registry
}

// NewResolver creates the root resolver. The node registry is built on first use.
func NewResolver(deps Dependencies) *Resolver {
	r := &Resolver{
		paging:    deps.Paging,
		aggregate: deps.Aggregate,
	}
	r.nodes = node.NewRegistry(registrations(r)...)
	return r
}

// Nodes returns the node registry.
func (r *Resolver) Nodes() *node.Registry {
	return r.nodes
}

func (r *Resolver) Artist(ctx context.Context, args struct{ ID string }) (*ArtistResolver, error) {
	return r.artist(ctx, args.ID)
}

func (r *Resolver) Artwork(ctx context.Context, args struct{ ID string }) (*ArtworkResolver, error) {
	return r.artwork(ctx, args.ID)
}

func (r *Resolver) Partner(ctx context.Context, args struct{ ID string }) (*PartnerResolver, error) {
	return r.partner(ctx, args.ID)
}

func (r *Resolver) Fair(ctx context.Context, args struct{ ID string }) (*FairResolver, error) {
	return r.fair(ctx, args.ID)
}

func (r *Resolver) Sale(ctx context.Context, args struct{ ID string }) (*SaleResolver, error) {
	return r.sale(ctx, args.ID)
}

func (r *Resolver) Show(ctx context.Context, args struct{ ID string }) (*ShowResolver, error) {
	return r.show(ctx, args.ID)
}

func (r *Resolver) HomePageArtworkModule(ctx context.Context, args struct {
	Key string
	ID  *string
}) (*HomePageArtworkModuleResolver, error) {
	key := homePageModuleKey{Key: args.Key}
	if args.ID != nil {
		key.ID = *args.ID
	}
	return r.homePageArtworkModule(ctx, key)
}
