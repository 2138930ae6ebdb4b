package paging

import (
	"fmt"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
)

// Connection is a Relay connection over T.
type Connection[T any] struct {
	Edges       []Edge[T]
	PageInfo    PageInfo
	TotalCount  *int
	PageCursors *PageCursors
}

// Edge pairs a node with its cursor.
type Edge[T any] struct {
	Node   T
	Cursor string
}

// PageInfo describes the position of a connection window.
type PageInfo struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     *string
	EndCursor       *string
}

// SliceMeta locates a slice of items inside the full collection.
type SliceMeta struct {
	SliceStart  int
	ArrayLength *int
}

// Nodes returns the nodes of the connection in edge order.
func (c *Connection[T]) Nodes() []T {
	out := make([]T, len(c.Edges))
	for i, e := range c.Edges {
		out[i] = e.Node
	}
	return out
}

// ConnectionFromArraySlice slices items, which start at meta.SliceStart in the
// full collection, into the window requested by args.
func ConnectionFromArraySlice[T any](items []T, args ConnectionArgs, meta SliceMeta) (*Connection[T], error) {
	if args.First != nil && *args.First < 0 {
		return nil, fmt.Errorf("first must be non-negative: %w", errs.ErrInvalidInput)
	}
	if args.Last != nil && *args.Last < 0 {
		return nil, fmt.Errorf("last must be non-negative: %w", errs.ErrInvalidInput)
	}

	sliceStart := max(meta.SliceStart, 0)
	sliceEnd := sliceStart + len(items)
	arrayLength := sliceEnd
	if meta.ArrayLength != nil {
		arrayLength = *meta.ArrayLength
	}

	start := sliceStart
	end := min(sliceEnd, max(arrayLength, sliceStart))
	if present(args.After) {
		after, err := OffsetForCursor(*args.After)
		if err != nil {
			return nil, err
		}
		start = max(start, after+1)
	}
	if present(args.Before) {
		before, err := OffsetForCursor(*args.Before)
		if err != nil {
			return nil, err
		}
		end = min(end, before)
	}
	if args.First != nil {
		end = min(end, start+*args.First)
	}
	if args.Last != nil {
		start = max(start, end-*args.Last)
	}
	if end < start {
		end = start
	}

	conn := &Connection[T]{Edges: make([]Edge[T], 0, end-start)}
	for offset := start; offset < end; offset++ {
		conn.Edges = append(conn.Edges, Edge[T]{
			Node:   items[offset-sliceStart],
			Cursor: CursorForOffset(offset),
		})
	}
	if len(conn.Edges) > 0 {
		conn.PageInfo.StartCursor = cursorPtr(start)
		conn.PageInfo.EndCursor = cursorPtr(end - 1)
	}
	conn.PageInfo.HasNextPage = end < arrayLength
	conn.PageInfo.HasPreviousPage = start > 0
	return conn, nil
}

// Paginate builds a connection from the single backend page params.Page,
// attaching the total count and pager cursors when total is known. Items are
// positioned at the page boundary; args.After and args.Before still bound the
// window when a cursor does not fall on one. A before-only window keeps the
// items closest to the cursor, so paging backwards never skips an item.
func Paginate[T any](c Config, items []T, args ConnectionArgs, params PageParams, total *int) (*Connection[T], error) {
	size := params.Size
	if size <= 0 {
		size = c.withDefaults().DefaultSize
	}
	window := ConnectionArgs{First: &size, After: args.After, Before: args.Before}
	if present(args.Before) && !present(args.After) {
		window = ConnectionArgs{Last: &size, Before: args.Before}
	}
	conn, err := ConnectionFromArraySlice(items, window, SliceMeta{
		SliceStart:  (max(params.Page, 1) - 1) * size,
		ArrayLength: total,
	})
	if err != nil {
		return nil, err
	}
	if total != nil {
		count := *total
		conn.TotalCount = &count
		conn.PageCursors = c.PageCursors(params, count)
	}
	return conn, nil
}
