package biz

// PageMeta describes one page of a larger result set.
type PageMeta struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Page is a slice of items plus its meta.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// NewPageMeta computes the pagination envelope. It performs no clamping: a
// page past the end simply yields HasNext=false, and bounds on page/limit
// are the validation boundary's job.
func NewPageMeta(page, limit int, total int64) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PageMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// NewPage wraps items with their meta.
func NewPage[T any](items []T, page, limit int, total int64) *Page[T] {
	return &Page[T]{Items: items, Meta: NewPageMeta(page, limit, total)}
}
