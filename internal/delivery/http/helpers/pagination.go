package helpers

import (
	"net/http"
	"strconv"

	"eventuras/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage  = 1
	DefaultCount = 100
	MaxCount     = 250
)

// ParsePagination reads page and count from the request query string, clamps
// them to valid ranges, and returns domain.PaginationParams. Invalid or
// missing values fall back to defaults. A count of 0 is allowed and returns
// an empty page with the total still populated.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	count := DefaultCount
	if s := r.URL.Query().Get("count"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			count = v
			if count > MaxCount {
				count = MaxCount
			}
		}
	}
	return domain.PaginationParams{Page: page, Count: count}
}

// Page is the envelope for paginated list responses.
// swagger:model Page
type Page struct {
	Page  int `json:"page"`
	Count int `json:"count"`
	Total int `json:"total"`
	Pages int `json:"pages"`
	Data  any `json:"data"`
}

// NewPage builds a paginated envelope from the request parameters, the total
// row count, and the page of data. Pages is ceiling(total / count); a zero
// count yields zero pages.
func NewPage(params domain.PaginationParams, total int, data any) Page {
	pages := 0
	if params.Count > 0 {
		pages = (total + params.Count - 1) / params.Count
	}
	return Page{
		Page:  params.Page,
		Count: params.Count,
		Total: total,
		Pages: pages,
		Data:  data,
	}
}
