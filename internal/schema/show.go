package schema

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/node"
)

type showData struct {
	InternalID string       `json:"_id"`
	Slug       string       `json:"id"`
	Name       string       `json:"name"`
	Partner    *partnerData `json:"partner"`
}

// ShowResolver resolves Show.
type ShowResolver struct {
	root *Resolver
	data showData
}

func (r *Resolver) newShow(d *showData) *ShowResolver {
	if d == nil {
		return nil
	}
	return &ShowResolver{root: r, data: *d}
}

func (r *Resolver) show(ctx context.Context, id string) (*ShowResolver, error) {
	d, err := loadOne[showData](ctx, path("show", id), nil)
	if err != nil {
		return nil, err
	}
	return r.newShow(d), nil
}

func (r *Resolver) showNode() node.Registration {
	return node.Registration{
		Type: "Show",
		New: func() (node.TypeResolver, error) {
			return node.ResolverFunc(func(ctx context.Context, args node.Args) (any, error) {
				id, _ := args["id"].(string)
				s, err := r.show(ctx, id)
				if s == nil {
					return nil, err
				}
				return s, nil
			}), nil
		},
	}
}

func (s *ShowResolver) ID() (graphql.ID, error) {
	return globalID("Show", s.data.InternalID)
}

func (s *ShowResolver) InternalID() graphql.ID { return graphql.ID(s.data.InternalID) }
func (s *ShowResolver) Slug() string           { return s.data.Slug }
func (s *ShowResolver) Name() *string          { return optional(s.data.Name) }

func (s *ShowResolver) Partner() *PartnerResolver {
	return s.root.newPartner(s.data.Partner)
}

// ArtworksConnection pages through the artworks shown. Shows are stored under
// their partner, so a show without one has no artworks.
func (s *ShowResolver) ArtworksConnection(ctx context.Context, args connectionArgs) (*connectionResolver[*ArtworkResolver], error) {
	if s.data.Partner == nil {
		return nil, nil
	}
	cargs := args.paging()
	pp, err := s.root.paging.PageParams(cargs)
	if err != nil {
		return nil, err
	}
	p := path("partner", s.data.Partner.InternalID, "show", s.data.InternalID, "artworks")
	items, total, err := loadPage[artworkData](ctx, p, pageParams(pp))
	if err != nil {
		return nil, err
	}
	return newConnection(s.root.paging, items, s.root.wrapArtwork, cargs, pp, total)
}
