package schema

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/node"
)

type artworkData struct {
	InternalID string       `json:"_id"`
	Slug       string       `json:"id"`
	Title      string       `json:"title"`
	Date       string       `json:"date"`
	Artist     *artistData  `json:"artist"`
	Partner    *partnerData `json:"partner"`
}

// ArtworkResolver resolves Artwork.
type ArtworkResolver struct {
	root *Resolver
	data artworkData
}

func (r *Resolver) newArtwork(d *artworkData) *ArtworkResolver {
	if d == nil {
		return nil
	}
	return &ArtworkResolver{root: r, data: *d}
}

func (r *Resolver) wrapArtwork(d artworkData) *ArtworkResolver {
	return r.newArtwork(&d)
}

func (r *Resolver) artwork(ctx context.Context, id string) (*ArtworkResolver, error) {
	d, err := loadOne[artworkData](ctx, path("artwork", id), nil)
	if err != nil {
		return nil, err
	}
	return r.newArtwork(d), nil
}

func (r *Resolver) artworkNode() node.Registration {
	return node.Registration{
		Type: "Artwork",
		New: func() (node.TypeResolver, error) {
			return node.ResolverFunc(func(ctx context.Context, args node.Args) (any, error) {
				id, _ := args["id"].(string)
				a, err := r.artwork(ctx, id)
				if a == nil {
					return nil, err
				}
				return a, nil
			}), nil
		},
	}
}

func (a *ArtworkResolver) ID() (graphql.ID, error) {
	return globalID("Artwork", a.data.InternalID)
}

func (a *ArtworkResolver) InternalID() graphql.ID { return graphql.ID(a.data.InternalID) }
func (a *ArtworkResolver) Slug() string           { return a.data.Slug }
func (a *ArtworkResolver) Title() *string         { return optional(a.data.Title) }
func (a *ArtworkResolver) Date() *string          { return optional(a.data.Date) }

func (a *ArtworkResolver) Artist() *ArtistResolver {
	return a.root.newArtist(a.data.Artist)
}

func (a *ArtworkResolver) Partner() *PartnerResolver {
	return a.root.newPartner(a.data.Partner)
}

// Context resolves the sale, fair or show the artwork is part of, in that order.
func (a *ArtworkResolver) Context(ctx context.Context) (*ArtworkContextResolver, error) {
	related := func(extra loader.Params) loader.Params {
		return loader.Params{"artwork[]": []string{a.data.InternalID}, "size": 1}.Merge(extra)
	}

	sales, err := loadList[saleData](ctx, "related/sales", related(loader.Params{"active": true}))
	if err != nil {
		return nil, err
	}
	if len(sales) > 0 {
		return &ArtworkContextResolver{kind: contextSale, sale: a.root.newSale(&sales[0])}, nil
	}

	fairs, err := loadList[fairData](ctx, "related/fairs", related(nil))
	if err != nil {
		return nil, err
	}
	if len(fairs) > 0 {
		return &ArtworkContextResolver{kind: contextFair, fair: a.root.newFair(&fairs[0])}, nil
	}

	shows, err := loadList[showData](ctx, "related/shows", related(loader.Params{"sort": "-end_at"}))
	if err != nil {
		return nil, err
	}
	if len(shows) > 0 {
		return &ArtworkContextResolver{kind: contextShow, show: a.root.newShow(&shows[0])}, nil
	}
	return nil, nil
}

type contextKind int

const (
	contextFair contextKind = iota + 1
	contextSale
	contextShow
)

// ArtworkContextResolver resolves the ArtworkContext union.
type ArtworkContextResolver struct {
	kind contextKind
	fair *FairResolver
	sale *SaleResolver
	show *ShowResolver
}

func (r *ArtworkContextResolver) ToFair() (*FairResolver, bool) {
	return r.fair, r.kind == contextFair
}

func (r *ArtworkContextResolver) ToSale() (*SaleResolver, bool) {
	return r.sale, r.kind == contextSale
}

func (r *ArtworkContextResolver) ToShow() (*ShowResolver, bool) {
	return r.show, r.kind == contextShow
}
