package schema

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/node"
)

type artistData struct {
	InternalID  string `json:"_id"`
	Slug        string `json:"id"`
	Name        string `json:"name"`
	Birthday    string `json:"birthday"`
	Nationality string `json:"nationality"`
}

// ArtistResolver resolves Artist.
type ArtistResolver struct {
	root *Resolver
	data artistData
}

func (r *Resolver) newArtist(d *artistData) *ArtistResolver {
	if d == nil {
		return nil
	}
	return &ArtistResolver{root: r, data: *d}
}

func (r *Resolver) artist(ctx context.Context, id string) (*ArtistResolver, error) {
	d, err := loadOne[artistData](ctx, path("artist", id), nil)
	if err != nil {
		return nil, err
	}
	return r.newArtist(d), nil
}

func (r *Resolver) artistNode() node.Registration {
	return node.Registration{
		Type: "Artist",
		New: func() (node.TypeResolver, error) {
			return node.ResolverFunc(func(ctx context.Context, args node.Args) (any, error) {
				id, _ := args["id"].(string)
				a, err := r.artist(ctx, id)
				if a == nil {
					return nil, err
				}
				return a, nil
			}), nil
		},
	}
}

func (a *ArtistResolver) ID() (graphql.ID, error) {
	return globalID("Artist", a.data.InternalID)
}

func (a *ArtistResolver) InternalID() graphql.ID { return graphql.ID(a.data.InternalID) }
func (a *ArtistResolver) Slug() string           { return a.data.Slug }
func (a *ArtistResolver) Name() *string          { return optional(a.data.Name) }
func (a *ArtistResolver) Birthday() *string      { return optional(a.data.Birthday) }
func (a *ArtistResolver) Nationality() *string   { return optional(a.data.Nationality) }

func (a *ArtistResolver) ArtworksConnection(ctx context.Context, args sortedConnectionArgs) (*connectionResolver[*ArtworkResolver], error) {
	cargs := args.paging()
	pp, err := a.root.paging.PageParams(cargs)
	if err != nil {
		return nil, err
	}
	params := pageParams(pp)
	if args.Sort != nil {
		params["sort"] = *args.Sort
	}
	items, total, err := loadPage[artworkData](ctx, path("artist", a.data.InternalID, "artworks"), params)
	if err != nil {
		return nil, err
	}
	return newConnection(a.root.paging, items, a.root.wrapArtwork, cargs, pp, total)
}

// ArtistsConnection resolves Query.artistsConnection.
func (r *Resolver) ArtistsConnection(ctx context.Context, args sortedConnectionArgs) (*connectionResolver[*ArtistResolver], error) {
	cargs := args.paging()
	pp, err := r.paging.PageParams(cargs)
	if err != nil {
		return nil, err
	}
	params := pageParams(pp)
	if args.Sort != nil {
		params["sort"] = *args.Sort
	}
	items, total, err := loadPage[artistData](ctx, "artists", params)
	if err != nil {
		return nil, err
	}
	wrap := func(d artistData) *ArtistResolver { return r.newArtist(&d) }
	return newConnection(r.paging, items, wrap, cargs, pp, total)
}
