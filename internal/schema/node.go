package schema

import (
	"context"
	"fmt"

	"github.com/graph-gophers/graphql-go"

	"github.com/xzzpig/graph-gateway/internal/node"
)

// registrations lists every type resolvable through Query.node.
func registrations(r *Resolver) []node.Registration {
	return []node.Registration{
		r.artistNode(),
		r.artworkNode(),
		r.partnerNode(),
		r.fairNode(),
		r.saleNode(),
		r.showNode(),
		r.homePageArtworkModuleNode(),
	}
}

func globalID(typeName, backendID string) (graphql.ID, error) {
	gid, err := node.ToGlobalID(typeName, backendID)
	if err != nil {
		return "", err
	}
	return graphql.ID(gid), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Node resolves Query.node. Unknown types and missing entities are null.
func (r *Resolver) Node(ctx context.Context, args struct{ ID graphql.ID }) (*NodeResolver, error) {
	n, err := r.nodes.Resolve(ctx, string(args.ID))
	if err != nil || n == nil {
		return nil, err
	}
	return &NodeResolver{node: n}, nil
}

// NodeResolver resolves the Node interface by dispatching on the node's type tag.
type NodeResolver struct {
	node *node.Node
}

type identified interface {
	ID() (graphql.ID, error)
}

func (r *NodeResolver) ID() (graphql.ID, error) {
	if v, ok := r.node.Value.(identified); ok {
		return v.ID()
	}
	return "", fmt.Errorf("node %s has no id", r.node.Type)
}

func (r *NodeResolver) ToArtist() (*ArtistResolver, bool) {
	if r.node.Type != "Artist" {
		return nil, false
	}
	v, ok := r.node.Value.(*ArtistResolver)
	return v, ok
}

func (r *NodeResolver) ToArtwork() (*ArtworkResolver, bool) {
	if r.node.Type != "Artwork" {
		return nil, false
	}
	v, ok := r.node.Value.(*ArtworkResolver)
	return v, ok
}

func (r *NodeResolver) ToPartner() (*PartnerResolver, bool) {
	if r.node.Type != "Partner" {
		return nil, false
	}
	v, ok := r.node.Value.(*PartnerResolver)
	return v, ok
}

func (r *NodeResolver) ToFair() (*FairResolver, bool) {
	if r.node.Type != "Fair" {
		return nil, false
	}
	v, ok := r.node.Value.(*FairResolver)
	return v, ok
}

func (r *NodeResolver) ToSale() (*SaleResolver, bool) {
	if r.node.Type != "Sale" {
		return nil, false
	}
	v, ok := r.node.Value.(*SaleResolver)
	return v, ok
}

func (r *NodeResolver) ToShow() (*ShowResolver, bool) {
	if r.node.Type != "Show" {
		return nil, false
	}
	v, ok := r.node.Value.(*ShowResolver)
	return v, ok
}

func (r *NodeResolver) ToHomePageArtworkModule() (*HomePageArtworkModuleResolver, bool) {
	if r.node.Type != "HomePageArtworkModule" {
		return nil, false
	}
	v, ok := r.node.Value.(*HomePageArtworkModuleResolver)
	return v, ok
}
