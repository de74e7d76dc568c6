package dto

// Meta describes the pagination envelope returned by list endpoints.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewMeta computes the envelope; totalPages = ceil(total/limit).
func NewMeta(total, page, limit int) Meta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + limit - 1) / limit
	return Meta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// Paginated wraps list data with its meta block.
type Paginated struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}
