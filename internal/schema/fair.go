package schema

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/aggregate"
	"github.com/xzzpig/graph-gateway/internal/node"
)

type fairData struct {
	InternalID string `json:"_id"`
	Slug       string `json:"id"`
	Name       string `json:"name"`
}

// FairResolver resolves Fair.
type FairResolver struct {
	root *Resolver
	data fairData
}

func (r *Resolver) newFair(d *fairData) *FairResolver {
	if d == nil {
		return nil
	}
	return &FairResolver{root: r, data: *d}
}

func (r *Resolver) fair(ctx context.Context, id string) (*FairResolver, error) {
	d, err := loadOne[fairData](ctx, path("fair", id), nil)
	if err != nil {
		return nil, err
	}
	return r.newFair(d), nil
}

func (r *Resolver) fairNode() node.Registration {
	return node.Registration{
		Type: "Fair",
		New: func() (node.TypeResolver, error) {
			return node.ResolverFunc(func(ctx context.Context, args node.Args) (any, error) {
				id, _ := args["id"].(string)
				f, err := r.fair(ctx, id)
				if f == nil {
					return nil, err
				}
				return f, nil
			}), nil
		},
	}
}

func (f *FairResolver) ID() (graphql.ID, error) {
	return globalID("Fair", f.data.InternalID)
}

func (f *FairResolver) InternalID() graphql.ID { return graphql.ID(f.data.InternalID) }
func (f *FairResolver) Slug() string           { return f.data.Slug }
func (f *FairResolver) Name() *string          { return optional(f.data.Name) }

// FairExhibitorsGroup is a run of exhibitors sharing a first letter.
type FairExhibitorsGroup struct {
	Letter     string
	Exhibitors []*FairExhibitor
}

// FairExhibitor is a partner exhibiting at a fair.
type FairExhibitor struct {
	Name      string
	PartnerID graphql.ID
}

// ExhibitorsGroupedByName fetches every exhibitor of the fair and groups
// them by the upper-cased first letter of their name. Names not starting
// with a letter are grouped under "#".
func (f *FairResolver) ExhibitorsGroupedByName(ctx context.Context) ([]*FairExhibitorsGroup, error) {
	l, err := gravity(ctx)
	if err != nil {
		return nil, err
	}
	partners, err := aggregate.AllOf[partnerData](ctx, l, aggregate.Options{
		Path:        path("fair", f.data.InternalID, "partners"),
		PageSize:    f.root.paging.MaxSize,
		Concurrency: f.root.aggregate.Concurrency,
		Timeout:     f.root.aggregate.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return groupByLetter(partners), nil
}

func groupByLetter(partners []partnerData) []*FairExhibitorsGroup {
	sorted := make([]partnerData, 0, len(partners))
	for _, p := range partners {
		if strings.TrimSpace(p.Name) != "" {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToUpper(sorted[i].Name) < strings.ToUpper(sorted[j].Name)
	})

	var groups []*FairExhibitorsGroup
	index := make(map[string]*FairExhibitorsGroup)
	for _, p := range sorted {
		letter := firstLetter(p.Name)
		g, ok := index[letter]
		if !ok {
			g = &FairExhibitorsGroup{Letter: letter}
			index[letter] = g
			groups = append(groups, g)
		}
		g.Exhibitors = append(g.Exhibitors, &FairExhibitor{
			Name:      p.Name,
			PartnerID: graphql.ID(p.InternalID),
		})
	}
	if groups == nil {
		groups = []*FairExhibitorsGroup{}
	}
	return groups
}

func firstLetter(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if !unicode.IsLetter(r) {
		return "#"
	}
	return string(unicode.ToUpper(r))
}
