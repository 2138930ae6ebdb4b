package paging

import (
	"net/http"
	"strconv"
	"strings"
)

// Default paging limits.
const (
	DefaultPageSize = 25
	DefaultMaxSize  = 100
	DefaultMaxPages = 100
)

// TotalCountHeader is the backend header carrying the collection size.
const TotalCountHeader = "X-Total-Count"

// ConnectionArgs are the Relay and page/size arguments accepted by connection fields.
type ConnectionArgs struct {
	First  *int
	Last   *int
	After  *string
	Before *string
	Page   *int
	Size   *int
}

// PageParams are backend paging coordinates.
type PageParams struct {
	Page   int
	Size   int
	Offset int
}

// Config holds the paging limits.
type Config struct {
	DefaultSize int
	MaxSize     int
	MaxPages    int
}

// DefaultConfig returns the built-in paging limits.
func DefaultConfig() Config {
	return Config{
		DefaultSize: DefaultPageSize,
		MaxSize:     DefaultMaxSize,
		MaxPages:    DefaultMaxPages,
	}
}

func (c Config) withDefaults() Config {
	if c.DefaultSize <= 0 {
		c.DefaultSize = DefaultPageSize
	}
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	return c
}

func (c Config) size(args ConnectionArgs) int {
	size := c.DefaultSize
	switch {
	case args.First != nil:
		size = *args.First
	case args.Last != nil:
		size = *args.Last
	case args.Size != nil:
		size = *args.Size
	}
	if size <= 0 {
		size = c.DefaultSize
	}
	if size > c.MaxSize {
		size = c.MaxSize
	}
	return size
}

func present(cursor *string) bool {
	return cursor != nil && *cursor != ""
}

// PageParams converts connection arguments into backend page coordinates.
func (c Config) PageParams(args ConnectionArgs) (PageParams, error) {
	c = c.withDefaults()
	size := c.size(args)
	offset := 0

	switch {
	case present(args.After):
		after, err := OffsetForCursor(*args.After)
		if err != nil {
			return PageParams{}, err
		}
		offset = after + 1
	case present(args.Before):
		before, err := OffsetForCursor(*args.Before)
		if err != nil {
			return PageParams{}, err
		}
		// Fetch the page holding the item just before the cursor.
		offset = max(0, (before-1)/size*size)
	case args.Page != nil:
		page := max(*args.Page, 1)
		offset = (page - 1) * size
	}

	return PageParams{
		Page:   offset/size + 1,
		Size:   size,
		Offset: offset,
	}, nil
}

// TotalPages returns the number of pages needed for totalCount items.
// A non-positive page size counts as a single page.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// TotalCountFromHeaders reads X-Total-Count from backend response headers.
func TotalCountFromHeaders(h http.Header) (int, bool) {
	if h == nil {
		return 0, false
	}
	v := strings.TrimSpace(h.Get(TotalCountHeader))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
