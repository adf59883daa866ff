package core

import (
	"sort"
	"strconv"
)

// Bucket is one point of the sales-versus-expenses trend series.
type Bucket struct {
	Label    string
	Sales    Money
	Expenses Money
}

// spanishMonths are the abbreviated month labels used on trend axes.
var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// Bucketize groups a window-filtered business subset by sub-period
// (day of month in a MONTH window, month in a YEAR window) and sums
// paid sales and expenses per bucket. Buckets are ordered
// chronologically.
func Bucketize(txs []Transaction, w Window) []Bucket {
	labels := make(map[int]string)
	sales := make(map[int]int64)
	expenses := make(map[int]int64)

	for _, t := range txs {
		if t.Origin != Business {
			continue
		}
		var order int
		var label string
		if w == Year {
			order = int(t.Date.Month())
			label = spanishMonths[order-1]
		} else {
			order = t.Date.Day()
			label = strconv.Itoa(order) + " " + spanishMonths[t.Date.Month()-1]
		}
		labels[order] = label

		switch {
		case t.Type == Income && t.Category != CategoryRoyalty &&
			t.Category != CategoryInventory && t.Status == Paid:
			sales[order] += t.Amount.Cents
		case t.Type == Expense && t.Category != CategoryInternalUse:
			expenses[order] += t.Amount.Cents
		}
	}

	keys := make([]int, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{
			Label:    labels[k],
			Sales:    Money{Cents: sales[k]},
			Expenses: Money{Cents: expenses[k]},
		})
	}
	return out
}
