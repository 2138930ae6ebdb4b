package schema

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/node"
)

type saleData struct {
	InternalID string `json:"_id"`
	Slug       string `json:"id"`
	Name       string `json:"name"`
	IsAuction  bool   `json:"is_auction"`
}

type saleArtworkData struct {
	Artwork *artworkData `json:"artwork"`
}

// SaleResolver resolves Sale.
type SaleResolver struct {
	root *Resolver
	data saleData
}

func (r *Resolver) newSale(d *saleData) *SaleResolver {
	if d == nil {
		return nil
	}
	return &SaleResolver{root: r, data: *d}
}

func (r *Resolver) sale(ctx context.Context, id string) (*SaleResolver, error) {
	d, err := loadOne[saleData](ctx, path("sale", id), nil)
	if err != nil {
		return nil, err
	}
	return r.newSale(d), nil
}

func (r *Resolver) saleNode() node.Registration {
	return node.Registration{
		Type: "Sale",
		New: func() (node.TypeResolver, error) {
			return node.ResolverFunc(func(ctx context.Context, args node.Args) (any, error) {
				id, _ := args["id"].(string)
				s, err := r.sale(ctx, id)
				if s == nil {
					return nil, err
				}
				return s, nil
			}), nil
		},
	}
}

func (s *SaleResolver) ID() (graphql.ID, error) {
	return globalID("Sale", s.data.InternalID)
}

func (s *SaleResolver) InternalID() graphql.ID { return graphql.ID(s.data.InternalID) }
func (s *SaleResolver) Slug() string           { return s.data.Slug }
func (s *SaleResolver) Name() *string          { return optional(s.data.Name) }
func (s *SaleResolver) IsAuction() bool        { return s.data.IsAuction }

// SaleArtworksConnection pages through the sale's lots. A lot without an
// artwork yields a null node so cursors stay aligned with the backend.
func (s *SaleResolver) SaleArtworksConnection(ctx context.Context, args connectionArgs) (*connectionResolver[*ArtworkResolver], error) {
	cargs := args.paging()
	pp, err := s.root.paging.PageParams(cargs)
	if err != nil {
		return nil, err
	}
	items, total, err := loadPage[saleArtworkData](ctx, path("sale", s.data.InternalID, "sale_artworks"), pageParams(pp))
	if err != nil {
		return nil, err
	}
	wrap := func(d saleArtworkData) *ArtworkResolver { return s.root.newArtwork(d.Artwork) }
	return newConnection(s.root.paging, items, wrap, cargs, pp, total)
}
