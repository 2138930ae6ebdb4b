package paging

// pageWindow is the number of pages a pager shows before collapsing to first/last.
const pageWindow = 5

// PageCursor points at a single page.
type PageCursor struct {
	Cursor    string
	Page      int
	IsCurrent bool
}

// PageCursors is a bounded window of navigable pages.
type PageCursors struct {
	First    *PageCursor
	Last     *PageCursor
	Previous *PageCursor
	Around   []PageCursor
}

// PageCursors builds the pager window for the current page. The cursor of a
// page is the "after" value that lands on it; page 1 has an empty cursor.
func (c Config) PageCursors(params PageParams, totalCount int) *PageCursors {
	c = c.withDefaults()
	size := params.Size
	if size <= 0 {
		size = c.DefaultSize
	}
	current := max(params.Page, 1)
	total := min(TotalPages(totalCount, size), c.MaxPages)

	cursor := func(page int) PageCursor {
		pc := PageCursor{Page: page, IsCurrent: page == current}
		if page > 1 {
			pc.Cursor = CursorForOffset((page-1)*size - 1)
		}
		return pc
	}
	ptr := func(page int) *PageCursor {
		pc := cursor(page)
		return &pc
	}
	pages := func(from, to int) []PageCursor {
		out := make([]PageCursor, 0, to-from+1)
		for p := from; p <= to; p++ {
			out = append(out, cursor(p))
		}
		return out
	}

	pc := &PageCursors{}
	switch {
	case total == 0:
		pc.Around = pages(1, 1)
	case total <= pageWindow:
		pc.Around = pages(1, total)
	case current <= pageWindow-1:
		pc.Around = pages(1, pageWindow-1)
		pc.Last = ptr(total)
	case current >= total-(pageWindow-2):
		pc.First = ptr(1)
		pc.Around = pages(total-(pageWindow-2), total)
	default:
		pc.First = ptr(1)
		pc.Around = pages(current-1, current+1)
		pc.Last = ptr(total)
	}
	if current > 1 {
		pc.Previous = ptr(current - 1)
	}
	return pc
}
