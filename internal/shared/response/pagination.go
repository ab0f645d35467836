package response

// Paginated is the envelope wrapped around every list result.
type Paginated[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPaginated computes page metadata from offset pagination. Page is
// 1-indexed; pages is a ceiling division of total by limit.
func NewPaginated[T any](items []T, total, skip, limit int) Paginated[T] {
	if items == nil {
		items = []T{}
	}

	page, pages := 1, 1
	if limit > 0 {
		page = skip/limit + 1
		pages = (total + limit - 1) / limit
		if pages < 1 {
			pages = 1
		}
	}

	return Paginated[T]{
		Items:   items,
		Total:   total,
		Skip:    skip,
		Limit:   limit,
		Page:    page,
		Pages:   pages,
		HasNext: skip+limit < total,
		HasPrev: skip > 0,
	}
}
