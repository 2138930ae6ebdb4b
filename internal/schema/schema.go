// Package schema defines the gateway's GraphQL schema and its resolvers.
package schema

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/log"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/xzzpig/graph-gateway/internal/paging"
)

//go:embed schema.graphql
var sdl string

// SDL returns the schema definition language source.
func SDL() string {
	return sdl
}

// AggregateOptions bound the all-pages fetches made by list fields.
type AggregateOptions struct {
	Concurrency int
	Timeout     time.Duration
}

// Dependencies holds the settings the resolvers are built with.
type Dependencies struct {
	Paging         paging.Config
	Aggregate      AggregateOptions
	MaxDepth       int
	MaxParallelism int
	// PanicLogger receives resolver panics. Optional.
	PanicLogger log.Logger
}

// Validate parses the SDL with gqlparser and checks that every type
// implementing Node has a node registration.
func Validate() (*ast.Schema, error) {
	s, gqlErr := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	if gqlErr != nil {
		return nil, fmt.Errorf("invalid schema: %w", gqlErr)
	}

	registered := make(map[string]bool)
	for _, reg := range registrations(&Resolver{}) {
		registered[reg.Type] = true
	}
	for _, def := range s.PossibleTypes["Node"] {
		if !registered[def.Name] {
			return nil, fmt.Errorf("type %s implements Node but has no node registration", def.Name)
		}
		delete(registered, def.Name)
	}
	for name := range registered {
		return nil, fmt.Errorf("node registration %s does not implement Node", name)
	}
	return s, nil
}

// New validates and parses the schema with its root resolver.
func New(deps Dependencies) (*graphql.Schema, error) {
	if _, err := Validate(); err != nil {
		return nil, err
	}

	opts := []graphql.SchemaOpt{graphql.UseFieldResolvers()}
	if deps.MaxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(deps.MaxDepth))
	}
	if deps.MaxParallelism > 0 {
		opts = append(opts, graphql.MaxParallelism(deps.MaxParallelism))
	}
	if deps.PanicLogger != nil {
		opts = append(opts, graphql.Logger(deps.PanicLogger))
	}

	s, err := graphql.ParseSchema(sdl, NewResolver(deps), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return s, nil
}
