package pagination

const (
	// DefaultPageSize is the standard page size when a caller does not provide one.
	DefaultPageSize = 20
	// MaxPageSize caps how many rows one page can request.
	MaxPageSize = 500
)

// State is page-number pagination derived from a fresh totalCount.
type State struct {
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasPrev     bool `json:"hasPrev"`
	HasNext     bool `json:"hasNext"`
}

// Compute derives the pagination state. The requested page is clamped into [1, TotalPages]
// so a page that fell out of range after the result set shrank is lowered, never rejected.
// pageSize is taken as given; only a non-positive size falls back to DefaultPageSize.
// Bounding it by MaxPageSize is the caller's job.
func Compute(totalCount, pageSize, requestedPage int) State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := 1
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	current := requestedPage
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	return State{
		CurrentPage: current,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasPrev:     current > 1,
		HasNext:     current < totalPages,
	}
}

// Loading returns a copy with navigation disabled while a fetch is in flight.
func (s State) Loading() State {
	s.HasPrev = false
	s.HasNext = false
	return s
}

// Offset is the zero-based row offset of the current page.
func (s State) Offset() int {
	if s.CurrentPage < 1 {
		return 0
	}
	return (s.CurrentPage - 1) * s.PageSize
}
