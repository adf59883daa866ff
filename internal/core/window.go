package core

import "time"

// Window is the time-window kind used to filter the record set.
type Window string

const (
	Day   Window = "day"
	Month Window = "month"
	Year  Window = "year"
)

func (w Window) Valid() bool {
	return w == Day || w == Month || w == Year
}

// Range returns the closed calendar interval [start, end] of the window
// unit containing ref, in ref's location.
func (w Window) Range(ref time.Time) (start, end time.Time) {
	y, m, d := ref.Date()
	loc := ref.Location()
	switch w {
	case Day:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	case Month:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	default: // Year
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	}
	return start, end
}

// Filter returns the subset of txs whose date falls inside the window
// containing ref, boundaries included. Input order is preserved.
func (w Window) Filter(txs []Transaction, ref time.Time) []Transaction {
	start, end := w.Range(ref)
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Prev moves the reference date back by one window unit; a year window
// steps twelve months.
func (w Window) Prev(ref time.Time) time.Time {
	switch w {
	case Day:
		return ref.AddDate(0, 0, -1)
	case Month:
		return ref.AddDate(0, -1, 0)
	default:
		return ref.AddDate(0, -12, 0)
	}
}

// Next moves the reference date forward by one window unit.
func (w Window) Next(ref time.Time) time.Time {
	switch w {
	case Day:
		return ref.AddDate(0, 0, 1)
	case Month:
		return ref.AddDate(0, 1, 0)
	default:
		return ref.AddDate(0, 12, 0)
	}
}
