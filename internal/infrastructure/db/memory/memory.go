// Package memory provides in-process implementations of the repository
// ports. They back STORAGE_DRIVER=memory and the service tests; data is lost
// on restart.
package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/univadmin/records-system/internal/core/query"
)

// window filters, sorts and pages items the same way the Mongo repositories
// do. items must be in insertion order; ties keep that order.
func window[T any](items []T, filter query.Filter, page query.PageOptions, fields func(T) map[string]any) ([]T, int64) {
	matched := make([]T, 0, len(items))
	for _, it := range items {
		if matches(fields(it), filter) {
			matched = append(matched, it)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		c := compare(fields(matched[i])[page.SortBy], fields(matched[j])[page.SortBy])
		if page.SortOrder == query.Asc {
			return c < 0
		}
		return c > 0
	})

	start, end := page.Window(len(matched))
	return matched[start:end], int64(len(matched))
}

func matches(doc map[string]any, f query.Filter) bool {
	for k, want := range f.Equals {
		if doc[k] != want {
			return false
		}
	}
	if f.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(f.SearchTerm)
	for _, field := range f.SearchFields {
		if s, ok := doc[field].(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return strings.Compare(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
	return 0
}
