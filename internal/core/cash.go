package core

import "time"

// DailyCash answers "how much liquid cash moved on this day" for the
// business. It scans the full record set, keeps business records dated
// inside the given day, and deliberately excludes pending receivables,
// inventory valuation, royalties and internal consumption (an
// accounting expense, not a cash outflow).
func DailyCash(txs []Transaction, day time.Time) Money {
	start, end := Day.Range(day)
	var cents int64
	for _, t := range txs {
		if t.Origin != Business {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		if t.Status == Pending || t.Category == CategoryInventory {
			continue
		}
		switch {
		case t.Type == Income && t.Category != CategoryRoyalty:
			cents += t.Amount.Cents
		case t.Type == Expense && t.Category != CategoryInternalUse:
			cents -= t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}
