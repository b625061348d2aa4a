package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items         []T `json:"items"`
	Page          int `json:"page"`
	PageSize      int `json:"page_size"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
}

// NewPageResponse assembles a page wrapper, deriving total_pages from the
// element count so every list endpoint reports pagination the same way.
func NewPageResponse[T any](items []T, page, pageSize, totalElements int) PageResponse[T] {
	// Avoid JSON null for an empty page
	if items == nil {
		items = make([]T, 0)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalElements + pageSize - 1) / pageSize
	}

	return PageResponse[T]{
		Items:         items,
		Page:          page,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}
