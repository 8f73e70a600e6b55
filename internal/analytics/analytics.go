// Package analytics holds the aggregation helpers behind dashboard cards:
// totals, averages, top-N views, and Indian currency scale formatting.
package analytics

import (
	"fmt"
	"sort"
)

// Sum totals value over items. Accessors treat missing data as 0.
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Average returns the mean of value over items, 0 for an empty collection.
func Average[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, value) / float64(len(items))
}

// MaxBy returns the item with the highest value. The first element wins
// ties. ok is false for an empty collection.
func MaxBy[T any](items []T, value func(T) float64) (best T, ok bool) {
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	for _, item := range items[1:] {
		if value(item) > value(best) {
			best = item
		}
	}
	return best, true
}

// TopNBy returns the n highest-valued items, descending. Each call sorts a
// fresh copy, so the revenue and quantity dashboard tabs are independent
// views of the same collection. Ties keep their original relative order.
func TopNBy[T any](items []T, n int, value func(T) float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return value(out[i]) > value(out[j])
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// FormatIndianNumber renders an amount on the Indian numbering scale.
// The thresholds are load-bearing for dashboard goldens: 1e7 crore,
// 1e5 lakh, 1e3 thousand.
func FormatIndianNumber(n float64) string {
	switch {
	case n >= 1e7:
		return fmt.Sprintf("₹%.2f Cr", n/1e7)
	case n >= 1e5:
		return fmt.Sprintf("₹%.2f L", n/1e5)
	case n >= 1e3:
		return fmt.Sprintf("₹%.1fk", n/1e3)
	default:
		return fmt.Sprintf("₹%g", n)
	}
}
