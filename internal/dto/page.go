package dto

// PageMetadata accompanies a paginated listing. Total is counted without the
// pagination applied; Count is the number of items on this page.
type PageMetadata struct {
	Total  int64 `json:"total"`
	Count  int   `json:"count"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type Page[T any] struct {
	Data     []T           `json:"data"`
	Metadata *PageMetadata `json:"metadata,omitempty"`
}

func NewPage[T any](items []T, total int64, limit, offset int, paginated bool) Page[T] {
	p := Page[T]{Data: items}
	if paginated {
		p.Metadata = &PageMetadata{Total: total, Count: len(items), Limit: limit, Offset: offset}
	}
	return p
}
