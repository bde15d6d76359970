// Package query turns raw list-endpoint query parameters into a storage
// agnostic filter and page window. Every entity list endpoint goes through
// Translate with its own ListSpec.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Reserved query parameter names.
const (
	ParamSearchTerm = "searchTerm"
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamSortBy     = "sortBy"
	ParamSortOrder  = "sortOrder"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultSortBy = "createdAt"
)

// SortOrder is either ascending or descending.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Kind tells Translate how to coerce a whitelisted filter value.
type Kind int

const (
	String Kind = iota
	Bool
)

// ListSpec is the per-entity whitelist.
type ListSpec struct {
	// Filters maps an accepted exact-match parameter to its value kind.
	Filters map[string]Kind
	// Search lists the fields matched by searchTerm (partial, case-insensitive).
	Search []string
	// Sorts lists the fields accepted by sortBy. DefaultSortBy is always accepted.
	Sorts []string
}

// Filter is the translated selection clause.
type Filter struct {
	SearchTerm   string
	SearchFields []string
	Equals       map[string]any
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return f.SearchTerm == "" && len(f.Equals) == 0
}

// PageOptions controls result windowing and order.
type PageOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// Skip is the number of matching items before the window. It is never
// negative for normalized options.
func (p PageOptions) Skip() int {
	if p.Page < 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of the page inside n items.
// Pages past the end yield the empty window [n, n).
func (p PageOptions) Window(n int) (int, int) {
	if p.Limit <= 0 || p.Page-1 > n/p.Limit {
		return n, n
	}
	start := p.Skip()
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n || end < start {
		end = n
	}
	return start, end
}

// Normalize fills defaults and clamps out-of-range values. It is idempotent.
func (p PageOptions) Normalize() PageOptions {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	// keeps Skip inside int
	if maxPage := math.MaxInt/p.Limit + 1; p.Page > maxPage {
		p.Page = maxPage
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortOrder != Asc {
		p.SortOrder = Desc
	}
	return p
}

// Meta is returned alongside list data for client-side paging.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// NewMeta builds Meta for a page and the full matching count.
func NewMeta(p PageOptions, total int64) Meta {
	return Meta{Page: p.Page, Limit: p.Limit, Total: total}
}

// Result is one page of a list query.
type Result[T any] struct {
	Meta Meta
	Data []T
}

// Translate extracts whitelisted filters and page options from raw. Fields
// outside spec, and values that cannot be coerced to their kind, are
// dropped silently.
func Translate(raw url.Values, spec ListSpec) (Filter, PageOptions) {
	return Pick(raw, spec), Paginate(raw, spec)
}

// Pick builds the filter half of Translate.
func Pick(raw url.Values, spec ListSpec) Filter {
	f := Filter{Equals: map[string]any{}}

	for field, kind := range spec.Filters {
		v := strings.TrimSpace(raw.Get(field))
		if v == "" {
			continue
		}
		switch kind {
		case Bool:
			b, err := strconv.ParseBool(v)
			if err != nil {
				continue
			}
			f.Equals[field] = b
		default:
			f.Equals[field] = v
		}
	}

	if len(spec.Search) > 0 {
		if term := strings.TrimSpace(raw.Get(ParamSearchTerm)); term != "" {
			f.SearchTerm = term
			f.SearchFields = append([]string(nil), spec.Search...)
		}
	}
	return f
}

// Paginate builds the page half of Translate.
func Paginate(raw url.Values, spec ListSpec) PageOptions {
	p := PageOptions{
		Page:  atoi(raw.Get(ParamPage)),
		Limit: atoi(raw.Get(ParamLimit)),
	}

	if by := strings.TrimSpace(raw.Get(ParamSortBy)); by != "" && spec.sortable(by) {
		p.SortBy = by
	}
	if strings.EqualFold(strings.TrimSpace(raw.Get(ParamSortOrder)), string(Asc)) {
		p.SortOrder = Asc
	}
	return p.Normalize()
}

func (s ListSpec) sortable(field string) bool {
	if field == DefaultSortBy {
		return true
	}
	for _, f := range s.Sorts {
		if f == field {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
