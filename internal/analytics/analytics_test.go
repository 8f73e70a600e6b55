package analytics

import "testing"

type item struct {
	Name    string
	Revenue float64
	Qty     float64
}

func TestFormatIndianNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{999, "₹999"},
		{1500, "₹1.5k"},
		{150000, "₹1.50 L"},
		{15000000, "₹1.50 Cr"},
		{0, "₹0"},
		{1000, "₹1.0k"},
		{100000, "₹1.00 L"},
		{10000000, "₹1.00 Cr"},
	}
	for _, tc := range cases {
		if got := FormatIndianNumber(tc.in); got != tc.want {
			t.Fatalf("FormatIndianNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSumAndAverage(t *testing.T) {
	items := []item{{Revenue: 100}, {Revenue: 0}, {Revenue: 50}}
	if got := Sum(items, func(i item) float64 { return i.Revenue }); got != 150 {
		t.Fatalf("Sum = %v, want 150", got)
	}
	if got := Average(items, func(i item) float64 { return i.Revenue }); got != 50 {
		t.Fatalf("Average = %v, want 50", got)
	}
	if got := Average([]item{}, func(i item) float64 { return i.Revenue }); got != 0 {
		t.Fatalf("Average of empty = %v, want 0", got)
	}
}

func TestMaxBy_FirstWinsTies(t *testing.T) {
	items := []item{
		{Name: "a", Revenue: 10},
		{Name: "b", Revenue: 30},
		{Name: "c", Revenue: 30},
	}
	best, ok := MaxBy(items, func(i item) float64 { return i.Revenue })
	if !ok || best.Name != "b" {
		t.Fatalf("MaxBy = %v (ok=%v), want b", best.Name, ok)
	}

	if _, ok := MaxBy([]item{}, func(i item) float64 { return i.Revenue }); ok {
		t.Fatal("MaxBy on empty must report ok=false")
	}
}

func TestTopNBy_IndependentViews(t *testing.T) {
	items := []item{
		{Name: "a", Revenue: 100, Qty: 1},
		{Name: "b", Revenue: 50, Qty: 9},
		{Name: "c", Revenue: 75, Qty: 5},
	}

	byRevenue := TopNBy(items, 2, func(i item) float64 { return i.Revenue })
	byQty := TopNBy(items, 2, func(i item) float64 { return i.Qty })

	if byRevenue[0].Name != "a" || byRevenue[1].Name != "c" {
		t.Fatalf("revenue view wrong: %v, %v", byRevenue[0].Name, byRevenue[1].Name)
	}
	if byQty[0].Name != "b" || byQty[1].Name != "c" {
		t.Fatalf("quantity view wrong: %v, %v", byQty[0].Name, byQty[1].Name)
	}
	// Source order untouched.
	if items[0].Name != "a" || items[1].Name != "b" || items[2].Name != "c" {
		t.Fatal("TopNBy must not reorder its input")
	}
}

func TestTopNBy_TiesKeepOriginalOrder(t *testing.T) {
	items := []item{
		{Name: "x", Revenue: 10},
		{Name: "y", Revenue: 10},
		{Name: "z", Revenue: 20},
	}
	top := TopNBy(items, 3, func(i item) float64 { return i.Revenue })
	if top[0].Name != "z" || top[1].Name != "x" || top[2].Name != "y" {
		t.Fatalf("tie order wrong: %v %v %v", top[0].Name, top[1].Name, top[2].Name)
	}
}
