package shared

// Paginated is one page of a listing plus the totals a client needs to page through it
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated derives TotalPages by rounding total/pageSize up
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	p := Paginated[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects one page of a listing. Zero values fall back to the
// first page of DefaultPageSize rows; sizes above MaxPageSize are capped.
type PageRequest struct {
	Page     int
	PageSize int
}

// Number is the 1-based page actually served
func (p PageRequest) Number() int {
	return max(p.Page, 1)
}

func (p PageRequest) Limit() int {
	switch {
	case p.PageSize <= 0:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return p.PageSize
}

func (p PageRequest) Offset() int {
	return (p.Number() - 1) * p.Limit()
}
