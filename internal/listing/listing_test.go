package listing

import (
	"testing"
	"time"
)

type row struct {
	Name  string
	Price float64
	At    time.Time
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testRows() []row {
	return []row{
		{"Aviator Classic", 4999, day(3)},
		{"wayfarer", 2999, day(1)},
		{"Round Metal", 3499, day(5)},
		{"aviator Junior", 1999, day(2)},
	}
}

func testSchema() Schema[row] {
	return Schema[row]{
		Search: []func(row) string{func(r row) string { return r.Name }},
		Date:   func(r row) time.Time { return r.At },
		Sort: map[string]SortKey[row]{
			"name":  {Str: func(r row) string { return r.Name }},
			"price": {Num: func(r row) float64 { return r.Price }},
			"at":    {Time: func(r row) time.Time { return r.At }},
		},
	}
}

func names(items []row) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Name
	}
	return out
}

func TestApply_SearchCaseInsensitive(t *testing.T) {
	res := Apply(testRows(), Params{Query: "AVIATOR"}, testSchema())
	if res.TotalCount != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", res.TotalCount, names(res.Items))
	}
}

func TestApply_DateRange(t *testing.T) {
	from, to := day(2), day(3)
	res := Apply(testRows(), Params{From: &from, To: &to}, testSchema())
	if res.TotalCount != 2 {
		t.Fatalf("expected 2 rows in range, got %d", res.TotalCount)
	}
}

func TestApply_SortStringLocaleAware(t *testing.T) {
	res := Apply(testRows(), Params{SortField: "name", SortDir: Asc}, testSchema())
	got := names(res.Items)
	// Collation orders case-insensitively, unlike a raw byte compare.
	want := []string{"Aviator Classic", "aviator Junior", "Round Metal", "wayfarer"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("asc name sort: got %v, want %v", got, want)
		}
	}
}

func TestApply_SortDescMirrorsAsc(t *testing.T) {
	for _, field := range []string{"name", "price", "at"} {
		asc := Apply(testRows(), Params{SortField: field, SortDir: Asc}, testSchema())
		desc := Apply(testRows(), Params{SortField: field, SortDir: Desc}, testSchema())
		n := len(asc.Items)
		for i := 0; i < n; i++ {
			if asc.Items[i] != desc.Items[n-1-i] {
				t.Fatalf("field %s: desc is not the reverse of asc\nasc:  %v\ndesc: %v",
					field, names(asc.Items), names(desc.Items))
			}
		}
	}
}

func TestApply_SortTimeByEpoch(t *testing.T) {
	res := Apply(testRows(), Params{SortField: "at", SortDir: Asc}, testSchema())
	got := names(res.Items)
	want := []string{"wayfarer", "aviator Junior", "Aviator Classic", "Round Metal"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("time sort: got %v, want %v", got, want)
		}
	}
}

func TestApply_UnknownSortFieldKeepsOrder(t *testing.T) {
	res := Apply(testRows(), Params{SortField: "nope", SortDir: Desc}, testSchema())
	got := names(res.Items)
	want := names(testRows())
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unknown field reordered rows: got %v, want %v", got, want)
		}
	}
}

func TestApply_PaginationPartition(t *testing.T) {
	rows := testRows()
	schema := testSchema()
	for _, pageSize := range []int{1, 2, 3, 4, 5} {
		var seen []row
		page := 1
		for {
			res := Apply(rows, Params{Page: page, PageSize: pageSize}, schema)
			if len(res.Items) > pageSize {
				t.Fatalf("page %d size %d: slice longer than page size", page, pageSize)
			}
			if len(res.Items) == 0 {
				break
			}
			seen = append(seen, res.Items...)
			page++
		}
		if len(seen) != len(rows) {
			t.Fatalf("pageSize %d: concatenated pages have %d rows, want %d", pageSize, len(seen), len(rows))
		}
		for i := range rows {
			if seen[i] != rows[i] {
				t.Fatalf("pageSize %d: pages do not reconstruct the filtered set", pageSize)
			}
		}
	}
}

func TestApply_OutOfRangePageIsEmpty(t *testing.T) {
	res := Apply(testRows(), Params{Page: 9, PageSize: 2}, testSchema())
	if len(res.Items) != 0 {
		t.Fatalf("expected empty slice for out-of-range page, got %d items", len(res.Items))
	}
	if res.TotalCount != 4 || res.TotalPages != 2 {
		t.Fatalf("counts wrong: total=%d pages=%d", res.TotalCount, res.TotalPages)
	}
}

func TestApply_TotalPagesCeil(t *testing.T) {
	res := Apply(testRows(), Params{Page: 1, PageSize: 3}, testSchema())
	if res.TotalPages != 2 {
		t.Fatalf("expected ceil(4/3)=2 pages, got %d", res.TotalPages)
	}
}
