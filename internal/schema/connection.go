package schema

import (
	"github.com/xzzpig/graph-gateway/internal/paging"
)

type connectionArgs struct {
	First  *int32
	After  *string
	Last   *int32
	Before *string
	Page   *int32
	Size   *int32
}

func (a connectionArgs) paging() paging.ConnectionArgs {
	return paging.ConnectionArgs{
		First:  intPtr(a.First),
		Last:   intPtr(a.Last),
		After:  a.After,
		Before: a.Before,
		Page:   intPtr(a.Page),
		Size:   intPtr(a.Size),
	}
}

type sortedConnectionArgs struct {
	First  *int32
	After  *string
	Last   *int32
	Before *string
	Page   *int32
	Size   *int32
	Sort   *string
}

func (a sortedConnectionArgs) paging() paging.ConnectionArgs {
	return connectionArgs{
		First:  a.First,
		After:  a.After,
		Last:   a.Last,
		Before: a.Before,
		Page:   a.Page,
		Size:   a.Size,
	}.paging()
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

// connectionResolver serves every *Connection type.
type connectionResolver[R any] struct {
	conn *paging.Connection[R]
}

// newConnection wraps a single backend page into a connection of resolvers.
func newConnection[T, R any](cfg paging.Config, items []T, wrap func(T) R, args paging.ConnectionArgs, pp paging.PageParams, total *int) (*connectionResolver[R], error) {
	nodes := make([]R, len(items))
	for i, item := range items {
		nodes[i] = wrap(item)
	}
	conn, err := paging.Paginate(cfg, nodes, args, pp, total)
	if err != nil {
		return nil, err
	}
	return &connectionResolver[R]{conn: conn}, nil
}

func (r *connectionResolver[R]) Edges() []*edgeResolver[R] {
	out := make([]*edgeResolver[R], len(r.conn.Edges))
	for i := range r.conn.Edges {
		out[i] = &edgeResolver[R]{edge: r.conn.Edges[i]}
	}
	return out
}

func (r *connectionResolver[R]) PageInfo() *pageInfoResolver {
	return &pageInfoResolver{info: r.conn.PageInfo}
}

func (r *connectionResolver[R]) TotalCount() *int32 {
	return int32Ptr(r.conn.TotalCount)
}

func (r *connectionResolver[R]) PageCursors() *pageCursorsResolver {
	if r.conn.PageCursors == nil {
		return nil
	}
	return &pageCursorsResolver{cursors: r.conn.PageCursors}
}

type edgeResolver[R any] struct {
	edge paging.Edge[R]
}

func (r *edgeResolver[R]) Node() R {
	return r.edge.Node
}

func (r *edgeResolver[R]) Cursor() string {
	return r.edge.Cursor
}

type pageInfoResolver struct {
	info paging.PageInfo
}

func (r *pageInfoResolver) HasNextPage() bool     { return r.info.HasNextPage }
func (r *pageInfoResolver) HasPreviousPage() bool { return r.info.HasPreviousPage }
func (r *pageInfoResolver) StartCursor() *string  { return r.info.StartCursor }
func (r *pageInfoResolver) EndCursor() *string    { return r.info.EndCursor }

type pageCursorsResolver struct {
	cursors *paging.PageCursors
}

func (r *pageCursorsResolver) First() *pageCursorResolver { return newPageCursor(r.cursors.First) }
func (r *pageCursorsResolver) Last() *pageCursorResolver  { return newPageCursor(r.cursors.Last) }
func (r *pageCursorsResolver) Previous() *pageCursorResolver {
	return newPageCursor(r.cursors.Previous)
}

func (r *pageCursorsResolver) Around() []*pageCursorResolver {
	out := make([]*pageCursorResolver, len(r.cursors.Around))
	for i := range r.cursors.Around {
		out[i] = &pageCursorResolver{cursor: r.cursors.Around[i]}
	}
	return out
}

func newPageCursor(pc *paging.PageCursor) *pageCursorResolver {
	if pc == nil {
		return nil
	}
	return &pageCursorResolver{cursor: *pc}
}

type pageCursorResolver struct {
	cursor paging.PageCursor
}

func (r *pageCursorResolver) Cursor() string  { return r.cursor.Cursor }
func (r *pageCursorResolver) Page() int32     { return int32(r.cursor.Page) }
func (r *pageCursorResolver) IsCurrent() bool { return r.cursor.IsCurrent }
