// Package report contains the financial reporting use cases and the
// aggregation engine behind them.
package report

import "time"

// RangeType is the symbolic name of a reporting window.
type RangeType string

const (
	RangeToday   RangeType = "today"
	RangeWeek    RangeType = "week"
	RangeMonth   RangeType = "month"
	RangeQuarter RangeType = "quarter"
	RangeYear    RangeType = "year"
	RangeCustom  RangeType = "custom"
)

// IsValid reports whether t is a supported range type.
func (t RangeType) IsValid() bool {
	switch t {
	case RangeToday, RangeWeek, RangeMonth, RangeQuarter, RangeYear, RangeCustom:
		return true
	}
	return false
}

// DateRange is an inclusive [From, To] instant pair with its symbolic type.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	Type RangeType `json:"type"`
}

// ResolveRange maps a range type to an inclusive window anchored at anchor.
// Weeks start on Sunday. To is always 23:59:59.999 of the last included day.
// A custom range without both bounds falls back to the anchor's month; custom
// bounds given in reverse order are swapped so the range is never empty.
func ResolveRange(rangeType RangeType, anchor time.Time, from, to *time.Time) DateRange {
	loc := anchor.Location()
	day := startOfDay(anchor)

	switch rangeType {
	case RangeToday:
		return DateRange{From: day, To: endOfDay(day), Type: RangeToday}

	case RangeWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return DateRange{From: start, To: endOfDay(start.AddDate(0, 0, 6)), Type: RangeWeek}

	case RangeQuarter:
		quarter := (int(anchor.Month()) - 1) / 3
		start := time.Date(anchor.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, loc)
		return DateRange{From: start, To: endOfDay(start.AddDate(0, 3, -1)), Type: RangeQuarter}

	case RangeYear:
		start := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return DateRange{From: start, To: endOfDay(start.AddDate(1, 0, -1)), Type: RangeYear}

	case RangeCustom:
		if from != nil && to != nil {
			start, end := startOfDay(from.In(loc)), startOfDay(to.In(loc))
			if end.Before(start) {
				start, end = end, start
			}
			return DateRange{From: start, To: endOfDay(end), Type: RangeCustom}
		}
	}

	// Month, and the fallback for unknown or incomplete ranges.
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
	return DateRange{From: start, To: endOfDay(start.AddDate(0, 1, -1)), Type: RangeMonth}
}

// InRange reports whether ts falls inside r, inclusive on both ends.
func InRange(ts time.Time, r DateRange) bool {
	return !ts.Before(r.From) && !ts.After(r.To)
}

// Location returns the location the range was resolved in.
func (r DateRange) Location() *time.Location {
	return r.From.Location()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Millisecond*999), t.Location())
}
