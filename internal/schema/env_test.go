package schema_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/xzzpig/graph-gateway/internal/api/graphql/dataloader"
	"github.com/xzzpig/graph-gateway/internal/loader"
	"github.com/xzzpig/graph-gateway/internal/paging"
	"github.com/xzzpig/graph-gateway/internal/schema"
)

type object = map[string]any

// fakeGravity serves canned entities and paginated collections by path.
type fakeGravity struct {
	mu          sync.Mutex
	entities    map[string]object
	collections map[string][]object
	failures    map[string]error
	requests    []string
}

func newFakeGravity() *fakeGravity {
	return &fakeGravity{
		entities:    map[string]object{},
		collections: map[string][]object{},
		failures:    map[string]error{},
	}
}

func (f *fakeGravity) Load(_ context.Context, path string, params loader.Params) (*loader.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, loader.Key(path, params))
	err := f.failures[path]
	entity, isEntity := f.entities[path]
	items, isCollection := f.collections[path]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if isEntity {
		body, _ := json.Marshal(entity)
		return &loader.Response{Body: body}, nil
	}
	if isCollection {
		size := params.Int("size", 25)
		page := params.Int("page", 1)
		start := min((page-1)*size, len(items))
		end := min(start+size, len(items))
		body, _ := json.Marshal(items[start:end])
		h := http.Header{}
		if params["total_count"] == true {
			h.Set(paging.TotalCountHeader, strconv.Itoa(len(items)))
		}
		return &loader.Response{Body: body, Headers: h}, nil
	}
	return nil, &loader.HTTPError{Backend: "gravity", URL: path, StatusCode: http.StatusNotFound}
}

func (f *fakeGravity) requestCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func numbered(n int, fn func(i int) object) []object {
	out := make([]object, n)
	for i := range out {
		out[i] = fn(i)
	}
	return out
}

// TestEnv runs queries against the schema with a fake gravity backend.
type TestEnv struct {
	Gravity  *fakeGravity
	Schema   *graphql.Schema
	Resolver *schema.Resolver
}

// NewTestEnv creates a TestEnv seeded with a small catalog.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	gravity := newFakeGravity()
	banksy := object{"_id": "4d8b92b34eb68a1b2c0003f4", "id": "banksy", "name": "Banksy", "nationality": "British"}
	gravity.entities["artist/banksy"] = banksy
	gravity.entities["artist/4d8b92b34eb68a1b2c0003f4"] = banksy
	gravity.collections["artists"] = numbered(53, func(i int) object {
		return object{"_id": fmt.Sprintf("artist-%02d", i), "id": fmt.Sprintf("artist-slug-%02d", i), "name": fmt.Sprintf("Artist %02d", i)}
	})
	gravity.collections["artist/4d8b92b34eb68a1b2c0003f4/artworks"] = numbered(12, func(i int) object {
		return object{"_id": fmt.Sprintf("work-%02d", i), "id": fmt.Sprintf("banksy-work-%02d", i), "title": fmt.Sprintf("Work %02d", i)}
	})

	skull := object{
		"_id": "5a1f", "id": "andy-warhol-skull", "title": "Skull",
		"artist":  object{"_id": "warhol", "id": "andy-warhol", "name": "Andy Warhol"},
		"partner": object{"_id": "p-gagosian", "id": "gagosian", "name": "Gagosian"},
	}
	gravity.entities["artwork/andy-warhol-skull"] = skull
	gravity.entities["artwork/5a1f"] = skull
	gravity.collections["related/sales"] = []object{}
	gravity.collections["related/fairs"] = []object{{"_id": "fair-1", "id": "frieze-london", "name": "Frieze London"}}
	gravity.collections["related/shows"] = []object{}

	frieze := object{"_id": "fair-1", "id": "frieze-london", "name": "Frieze London"}
	gravity.entities["fair/frieze-london"] = frieze
	gravity.entities["fair/fair-1"] = frieze

	gagosian := object{"_id": "p-gagosian", "id": "gagosian", "name": "Gagosian"}
	gravity.entities["partner/gagosian"] = gagosian
	gravity.entities["partner/p-gagosian"] = gagosian
	gravity.collections["partner/p-gagosian/shows"] = numbered(3, func(i int) object {
		return object{"_id": fmt.Sprintf("show-%d", i), "id": fmt.Sprintf("gagosian-show-%d", i), "name": fmt.Sprintf("Show %d", i)}
	})

	gravity.entities["sale/spring-auction"] = object{"_id": "sale-1", "id": "spring-auction", "name": "Spring Auction", "is_auction": true}
	gravity.collections["sale/sale-1/sale_artworks"] = []object{{"artwork": skull}, {"artwork": nil}}

	gravity.entities["show/gagosian-show-0"] = object{"_id": "show-0", "id": "gagosian-show-0", "name": "Show 0", "partner": gagosian}
	gravity.collections["partner/p-gagosian/show/show-0/artworks"] = []object{skull}

	gravity.collections["gene/surrealism/artworks"] = []object{skull}
	gravity.collections["filter/artworks"] = []object{skull}

	deps := schema.Dependencies{
		Paging:         paging.DefaultConfig(),
		Aggregate:      schema.AggregateOptions{Concurrency: 4},
		MaxDepth:       15,
		MaxParallelism: 10,
	}
	s, err := schema.New(deps)
	require.NoError(t, err)

	return &TestEnv{Gravity: gravity, Schema: s, Resolver: schema.NewResolver(deps)}
}

// Context returns a request context carrying fresh per-request loaders.
func (e *TestEnv) Context() context.Context {
	registry := loader.NewStaticRegistry(map[string]loader.Loader{schema.GravityBackend: e.Gravity})
	return dataloader.WithLoaders(context.Background(), dataloader.NewLoaders(registry))
}

// Execute runs query with vars.
func (e *TestEnv) Execute(t *testing.T, query string, vars map[string]interface{}) *graphql.Response {
	t.Helper()
	return e.Schema.Exec(e.Context(), query, "", vars)
}

// ResolverTestSuite is a base test suite for resolver tests.
type ResolverTestSuite struct {
	suite.Suite
	Env *TestEnv
}

// SetupTest runs before each test in the suite.
func (s *ResolverTestSuite) SetupTest() {
	s.Env = NewTestEnv(s.T())
}
