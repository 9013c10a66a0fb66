package table

// DefaultPageSize mirrors the number of rows the admin table shows per page.
const DefaultPageSize = 10

// PageNav is a relative navigation target on the pagination bar.
type PageNav string

const (
	NavFirst    PageNav = "first"
	NavPrevious PageNav = "previous"
	NavNext     PageNav = "next"
	NavLast     PageNav = "last"
)

// Paginator derives page geometry for a filtered result of a given size.
type Paginator struct {
	Total    int
	PageSize int
	Current  int
}

// NewPaginator builds a paginator, normalising a non-positive page size to the
// default and a non-positive current page to 1.
func NewPaginator(total, pageSize, current int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if current < 1 {
		current = 1
	}
	if total < 0 {
		total = 0
	}
	return Paginator{Total: total, PageSize: pageSize, Current: current}
}

// PageCount is ceil(Total/PageSize); zero when nothing matched.
func (p Paginator) PageCount() int {
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// Pages lists every page number that gets a button.
func (p Paginator) Pages() []int {
	count := p.PageCount()
	pages := make([]int, count)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Bounds returns the half-open slice [start, end) of the current page, clipped
// to Total. A page past the end yields an empty range.
func (p Paginator) Bounds() (int, int) {
	start := (p.Current - 1) * p.PageSize
	end := p.Current * p.PageSize
	if start > p.Total {
		start = p.Total
	}
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// PreviousDisabled reports whether first/previous controls are inactive.
func (p Paginator) PreviousDisabled() bool {
	return p.Current <= 1
}

// NextDisabled reports whether next/last controls are inactive.
func (p Paginator) NextDisabled() bool {
	count := p.PageCount()
	return count == 0 || p.Current >= count
}

// Navigate resolves a relative target into the resulting current page.
// Disabled moves leave the page unchanged.
func (p Paginator) Navigate(nav PageNav) int {
	switch nav {
	case NavFirst:
		return 1
	case NavPrevious:
		if p.PreviousDisabled() {
			return p.Current
		}
		return p.Current - 1
	case NavNext:
		if p.NextDisabled() {
			return p.Current
		}
		return p.Current + 1
	case NavLast:
		if count := p.PageCount(); count > 0 {
			return count
		}
		return 1
	default:
		return p.Current
	}
}

// Goto returns page when it has a button, otherwise the current page.
func (p Paginator) Goto(page int) int {
	if page < 1 || page > p.PageCount() {
		return p.Current
	}
	return page
}

// Clamp pulls the current page back into [1, PageCount].
func (p Paginator) Clamp() int {
	count := p.PageCount()
	if p.Current > count {
		if count == 0 {
			return 1
		}
		return count
	}
	return p.Current
}
