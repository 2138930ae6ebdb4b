package schema

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/node"
)

type partnerData struct {
	InternalID string `json:"_id"`
	Slug       string `json:"id"`
	Name       string `json:"name"`
}

// PartnerResolver resolves Partner.
type PartnerResolver struct {
	root *Resolver
	data partnerData
}

func (r *Resolver) newPartner(d *partnerData) *PartnerResolver {
	if d == nil {
		return nil
	}
	return &PartnerResolver{root: r, data: *d}
}

func (r *Resolver) partner(ctx context.Context, id string) (*PartnerResolver, error) {
	d, err := loadOne[partnerData](ctx, path("partner", id), nil)
	if err != nil {
		return nil, err
	}
	return r.newPartner(d), nil
}

func (r *Resolver) partnerNode() node.Registration {
	return node.Registration{
		Type: "Partner",
		New: func() (node.TypeResolver, error) {
			return node.ResolverFunc(func(ctx context.Context, args node.Args) (any, error) {
				id, _ := args["id"].(string)
				p, err := r.partner(ctx, id)
				if p == nil {
					return nil, err
				}
				return p, nil
			}), nil
		},
	}
}

func (p *PartnerResolver) ID() (graphql.ID, error) {
	return globalID("Partner", p.data.InternalID)
}

func (p *PartnerResolver) InternalID() graphql.ID { return graphql.ID(p.data.InternalID) }
func (p *PartnerResolver) Slug() string           { return p.data.Slug }
func (p *PartnerResolver) Name() *string          { return optional(p.data.Name) }

func (p *PartnerResolver) ShowsConnection(ctx context.Context, args connectionArgs) (*connectionResolver[*ShowResolver], error) {
	cargs := args.paging()
	pp, err := p.root.paging.PageParams(cargs)
	if err != nil {
		return nil, err
	}
	items, total, err := loadPage[showData](ctx, path("partner", p.data.InternalID, "shows"), pageParams(pp))
	if err != nil {
		return nil, err
	}
	wrap := func(d showData) *ShowResolver { return p.root.newShow(&d) }
	return newConnection(p.root.paging, items, wrap, cargs, pp, total)
}
