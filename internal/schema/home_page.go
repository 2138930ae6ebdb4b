package schema

import (
	"context"
	"encoding/json"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/node"
)

// homePageModuleKey identifies a home page module. Its JSON form is the
// module's backend ID.
type homePageModuleKey struct {
	Key string `json:"key"`
	ID  string `json:"id,omitempty"`
}

type homePageModule struct {
	title   string
	needsID bool
	path    func(id string) string
	params  loader.Params
}

const homePageModuleSize = 10

var homePageModules = map[string]homePageModule{
	"popular_artworks": {
		title:  "Popular artworks",
		path:   func(string) string { return "filter/artworks" },
		params: loader.Params{"sort": "-decayed_merch"},
	},
	"generic_gene": {
		title:   "From a category you like",
		needsID: true,
		path:    func(id string) string { return path("gene", id, "artworks") },
	},
	"followed_artist": {
		title:   "Works by an artist you follow",
		needsID: true,
		path:    func(id string) string { return path("artist", id, "artworks") },
	},
}

// HomePageArtworkModuleResolver resolves HomePageArtworkModule.
type HomePageArtworkModuleResolver struct {
	root   *Resolver
	key    homePageModuleKey
	module homePageModule
}

func (r *Resolver) homePageArtworkModule(_ context.Context, key homePageModuleKey) (*HomePageArtworkModuleResolver, error) {
	module, ok := homePageModules[key.Key]
	if !ok || (module.needsID && key.ID == "") {
		return nil, nil
	}
	return &HomePageArtworkModuleResolver{root: r, key: key, module: module}, nil
}

func (r *Resolver) homePageArtworkModuleNode() node.Registration {
	return node.Registration{
		Type:   "HomePageArtworkModule",
		Decode: node.JSONArgs,
		New: func() (node.TypeResolver, error) {
			return node.ResolverFunc(func(ctx context.Context, args node.Args) (any, error) {
				var key homePageModuleKey
				key.Key, _ = args["key"].(string)
				key.ID, _ = args["id"].(string)
				m, err := r.homePageArtworkModule(ctx, key)
				if m == nil {
					return nil, err
				}
				return m, nil
			}), nil
		},
	}
}

func (m *HomePageArtworkModuleResolver) ID() (graphql.ID, error) {
	raw, err := json.Marshal(m.key)
	if err != nil {
		return "", err
	}
	return globalID("HomePageArtworkModule", string(raw))
}

func (m *HomePageArtworkModuleResolver) Key() string   { return m.key.Key }
func (m *HomePageArtworkModuleResolver) Title() string { return m.module.title }

func (m *HomePageArtworkModuleResolver) Results(ctx context.Context) ([]*ArtworkResolver, error) {
	params := m.module.params.Merge(loader.Params{"size": homePageModuleSize})
	items, err := loadList[artworkData](ctx, m.module.path(m.key.ID), params)
	if err != nil {
		return nil, err
	}
	out := make([]*ArtworkResolver, 0, len(items))
	for _, item := range items {
		out = append(out, m.root.wrapArtwork(item))
	}
	return out, nil
}
