// Package listing implements the shared list pipeline behind every
// back-office table: free-text search, optional date-range filter,
// field sort, and page slicing. Pure functions, safe to run per request.
package listing

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Params describes one list request.
type Params struct {
	Query     string
	From      *time.Time
	To        *time.Time
	SortField string
	SortDir   Direction
	Page      int // 1-based
	PageSize  int
}

// SortKey exposes exactly one typed accessor for a sortable field.
// String fields collate locale-aware, numbers compare by subtraction sign,
// times by epoch value.
type SortKey[T any] struct {
	Str  func(T) string
	Num  func(T) float64
	Time func(T) time.Time
}

// Schema wires an entity type into the pipeline.
type Schema[T any] struct {
	// Search lists the string fields matched case-insensitively against Query.
	Search []func(T) string
	// Date is the timestamp field the From/To range applies to. Optional.
	Date func(T) time.Time
	// Sort maps sort field names to their accessors. Unknown names leave the
	// incoming order untouched.
	Sort map[string]SortKey[T]
}

// Result is the shaped page plus the counts pagination controls need.
type Result[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// Apply runs filter, sort, and slice over items. The input slice is not
// modified. An out-of-range page yields an empty Items slice, not an error;
// clamping is the caller's job.
func Apply[T any](items []T, p Params, s Schema[T]) Result[T] {
	filtered := filter(items, p, s)

	if key, ok := s.Sort[p.SortField]; ok {
		sortItems(filtered, key, p.SortDir)
	}

	total := len(filtered)
	pageSize := p.PageSize
	if pageSize <= 0 {
		return Result[T]{Items: filtered, TotalCount: total, TotalPages: 1, Page: p.Page, PageSize: total}
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	start := (p.Page - 1) * pageSize
	end := start + pageSize
	if start < 0 || start >= total {
		return Result[T]{Items: []T{}, TotalCount: total, TotalPages: totalPages, Page: p.Page, PageSize: pageSize}
	}
	if end > total {
		end = total
	}

	return Result[T]{
		Items:      filtered[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       p.Page,
		PageSize:   pageSize,
	}
}

func filter[T any](items []T, p Params, s Schema[T]) []T {
	query := strings.ToLower(strings.TrimSpace(p.Query))
	out := make([]T, 0, len(items))

	for _, item := range items {
		if query != "" && !matches(item, query, s.Search) {
			continue
		}
		if s.Date != nil {
			d := s.Date(item)
			if p.From != nil && d.Before(*p.From) {
				continue
			}
			if p.To != nil && d.After(*p.To) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func matches[T any](item T, query string, search []func(T) string) bool {
	for _, field := range search {
		if strings.Contains(strings.ToLower(field(item)), query) {
			return true
		}
	}
	return false
}

func sortItems[T any](items []T, key SortKey[T], dir Direction) {
	mult := 1
	if dir == Desc {
		mult = -1
	}

	// Collators are stateful, so build one per call instead of sharing.
	var coll *collate.Collator
	if key.Str != nil {
		coll = collate.New(language.English)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return mult*compare(items[i], items[j], key, coll) < 0
	})
}

func compare[T any](a, b T, key SortKey[T], coll *collate.Collator) int {
	switch {
	case key.Str != nil:
		return coll.CompareString(key.Str(a), key.Str(b))
	case key.Num != nil:
		d := key.Num(a) - key.Num(b)
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
		return 0
	case key.Time != nil:
		ta, tb := key.Time(a).UnixMilli(), key.Time(b).UnixMilli()
		switch {
		case ta < tb:
			return -1
		case ta > tb:
			return 1
		}
		return 0
	}
	// Misconfigured key: treat everything as equal, keep stable order.
	return 0
}
