package node

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Args are the arguments passed to a single-entity resolver.
type Args map[string]any

// ArgDecoder derives resolver arguments from a backend ID.
type ArgDecoder func(backendID string) (Args, error)

// IDArgs passes the backend ID as {"id": backendID}.
func IDArgs(backendID string) (Args, error) {
	return Args{"id": backendID}, nil
}

// JSONArgs parses the backend ID as a JSON object of arguments.
func JSONArgs(backendID string) (Args, error) {
	var args Args
	if err := json.Unmarshal([]byte(backendID), &args); err != nil {
		return nil, fmt.Errorf("%w: backend id is not a JSON object: %v", ErrMalformedGlobalID, err)
	}
	if args == nil {
		return nil, fmt.Errorf("%w: backend id is null", ErrMalformedGlobalID)
	}
	return args, nil
}

// TypeResolver resolves a single entity of one type.
type TypeResolver interface {
	Resolve(ctx context.Context, args Args) (any, error)
}

// ResolverFunc adapts a function to TypeResolver.
type ResolverFunc func(ctx context.Context, args Args) (any, error)

// Resolve implements TypeResolver.
func (f ResolverFunc) Resolve(ctx context.Context, args Args) (any, error) {
	return f(ctx, args)
}

// Registration describes one node type.
type Registration struct {
	Type string
	// Decode defaults to IDArgs.
	Decode ArgDecoder
	New    func() (TypeResolver, error)
}

// Node is a resolved entity tagged with its concrete type name.
type Node struct {
	Type  string
	Value any
}

type entry struct {
	decode   ArgDecoder
	resolver TypeResolver
}

// Registry maps type names to resolvers. It is built once, on first use.
type Registry struct {
	registrations []Registration

	once    sync.Once
	entries map[string]entry
	types   []string
	err     error
}

// NewRegistry returns a registry over regs. Constructors run on first use.
func NewRegistry(regs ...Registration) *Registry {
	return &Registry{registrations: regs}
}

func (r *Registry) build() error {
	r.once.Do(func() {
		entries := make(map[string]entry, len(r.registrations))
		for _, reg := range r.registrations {
			if reg.Type == "" || reg.New == nil {
				r.err = fmt.Errorf("invalid node registration %q", reg.Type)
				return
			}
			if _, dup := entries[reg.Type]; dup {
				r.err = fmt.Errorf("duplicate node registration %q", reg.Type)
				return
			}
			resolver, err := reg.New()
			if err != nil {
				r.err = fmt.Errorf("failed to build %s resolver: %w", reg.Type, err)
				return
			}
			decode := reg.Decode
			if decode == nil {
				decode = IDArgs
			}
			entries[reg.Type] = entry{decode: decode, resolver: resolver}
		}

		types := make([]string, 0, len(entries))
		for name := range entries {
			types = append(types, name)
		}
		sort.Strings(types)

		r.entries = entries
		r.types = types
	})
	return r.err
}

// Supported reports whether typeName is registered.
func (r *Registry) Supported(typeName string) bool {
	if r.build() != nil {
		return false
	}
	_, ok := r.entries[typeName]
	return ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	if r.build() != nil {
		return nil
	}
	return append([]string(nil), r.types...)
}

// Resolve decodes gid and resolves it with the registered type resolver.
// An unregistered type, or an entity the resolver cannot find, yields (nil, nil).
func (r *Registry) Resolve(ctx context.Context, gid string) (*Node, error) {
	id, err := FromGlobalID(gid)
	if err != nil {
		return nil, err
	}
	if err := r.build(); err != nil {
		return nil, err
	}
	e, ok := r.entries[id.Type]
	if !ok {
		return nil, nil
	}
	args, err := e.decode(id.ID)
	if err != nil {
		return nil, err
	}
	value, err := e.resolver.Resolve(ctx, args)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return &Node{Type: id.Type, Value: value}, nil
}
