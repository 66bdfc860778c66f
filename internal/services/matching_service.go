package services

import (
	"strings"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/store"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// AnyValue is the option lists' "no filter" entry. It is accepted on the wire and
// treated as an absent filter.
const AnyValue = "All"

// JobQueryFromFilters turns list filters into a store query: values are trimmed,
// "All" is dropped and the page is clamped.
func JobQueryFromFilters(f dtos.JobFilters) store.JobQuery {
	page, limit := PageBounds(f.Page, f.Limit)
	return store.JobQuery{
		Search:   strings.TrimSpace(f.Search),
		Type:     filterValue(f.Type),
		Location: filterValue(f.Location),
		Category: filterValue(f.Category),
		Page:     page,
		Limit:    limit,
	}
}

// PageBounds applies the default page and size and caps the size.
func PageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, AnyValue) {
		return ""
	}
	return v
}
