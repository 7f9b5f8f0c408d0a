package dto

// PageMeta carries pagination metadata for list endpoints. Count and data
// queries behind a PageMeta always share identical predicates, so Total stays
// consistent with the returned page.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNextPage"`
	HasPrev    bool  `json:"hasPrevPage"`
}

// NewPageMeta derives pagination metadata from a total row count.
func NewPageMeta(total int64, page, limit int) PageMeta {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 1
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return PageMeta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
