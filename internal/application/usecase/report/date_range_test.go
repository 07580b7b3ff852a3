package report

import (
	"testing"
	"time"
)

func TestResolveRange(t *testing.T) {
	endOf := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	}
	startOf := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	customFrom := time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC)
	customTo := time.Date(2024, time.January, 20, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		rangeType    RangeType
		anchor       time.Time
		from, to     *time.Time
		expectedFrom time.Time
		expectedTo   time.Time
		expectedType RangeType
	}{
		{
			name:         "today",
			rangeType:    RangeToday,
			anchor:       time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC),
			expectedFrom: startOf(2024, time.March, 15),
			expectedTo:   endOf(2024, time.March, 15),
			expectedType: RangeToday,
		},
		{
			name:         "week starts on sunday",
			rangeType:    RangeWeek,
			anchor:       at(2024, time.March, 15), // Friday
			expectedFrom: startOf(2024, time.March, 10),
			expectedTo:   endOf(2024, time.March, 16),
			expectedType: RangeWeek,
		},
		{
			name:         "week anchored on sunday",
			rangeType:    RangeWeek,
			anchor:       at(2024, time.March, 10),
			expectedFrom: startOf(2024, time.March, 10),
			expectedTo:   endOf(2024, time.March, 16),
			expectedType: RangeWeek,
		},
		{
			name:         "month in leap february",
			rangeType:    RangeMonth,
			anchor:       at(2024, time.February, 10),
			expectedFrom: startOf(2024, time.February, 1),
			expectedTo:   endOf(2024, time.February, 29),
			expectedType: RangeMonth,
		},
		{
			name:         "quarter",
			rangeType:    RangeQuarter,
			anchor:       at(2024, time.May, 20),
			expectedFrom: startOf(2024, time.April, 1),
			expectedTo:   endOf(2024, time.June, 30),
			expectedType: RangeQuarter,
		},
		{
			name:         "last quarter",
			rangeType:    RangeQuarter,
			anchor:       at(2024, time.December, 31),
			expectedFrom: startOf(2024, time.October, 1),
			expectedTo:   endOf(2024, time.December, 31),
			expectedType: RangeQuarter,
		},
		{
			name:         "year",
			rangeType:    RangeYear,
			anchor:       at(2024, time.July, 4),
			expectedFrom: startOf(2024, time.January, 1),
			expectedTo:   endOf(2024, time.December, 31),
			expectedType: RangeYear,
		},
		{
			name:         "custom covers whole days",
			rangeType:    RangeCustom,
			anchor:       at(2024, time.March, 15),
			from:         &customFrom,
			to:           &customTo,
			expectedFrom: startOf(2024, time.January, 5),
			expectedTo:   endOf(2024, time.January, 20),
			expectedType: RangeCustom,
		},
		{
			name:         "custom bounds in reverse are swapped",
			rangeType:    RangeCustom,
			anchor:       at(2024, time.March, 15),
			from:         &customTo,
			to:           &customFrom,
			expectedFrom: startOf(2024, time.January, 5),
			expectedTo:   endOf(2024, time.January, 20),
			expectedType: RangeCustom,
		},
		{
			name:         "custom without bounds falls back to month",
			rangeType:    RangeCustom,
			anchor:       at(2024, time.March, 15),
			from:         &customFrom,
			expectedFrom: startOf(2024, time.March, 1),
			expectedTo:   endOf(2024, time.March, 31),
			expectedType: RangeMonth,
		},
		{
			name:         "unknown type falls back to month",
			rangeType:    RangeType("decade"),
			anchor:       at(2024, time.March, 15),
			expectedFrom: startOf(2024, time.March, 1),
			expectedTo:   endOf(2024, time.March, 31),
			expectedType: RangeMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRange(tt.rangeType, tt.anchor, tt.from, tt.to)

			if !got.From.Equal(tt.expectedFrom) {
				t.Errorf("expected from %v, got %v", tt.expectedFrom, got.From)
			}
			if !got.To.Equal(tt.expectedTo) {
				t.Errorf("expected to %v, got %v", tt.expectedTo, got.To)
			}
			if got.Type != tt.expectedType {
				t.Errorf("expected type %s, got %s", tt.expectedType, got.Type)
			}
			if got.From.After(got.To) {
				t.Errorf("expected non-empty range, got %v after %v", got.From, got.To)
			}
		})
	}
}

func TestResolveRange_UsesAnchorLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 02:00 UTC on April 1st is still March 31st at UTC-5.
	anchor := time.Date(2024, time.April, 1, 2, 0, 0, 0, time.UTC).In(loc)

	got := ResolveRange(RangeMonth, anchor, nil, nil)

	expectedFrom := time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)
	if !got.From.Equal(expectedFrom) {
		t.Errorf("expected from %v, got %v", expectedFrom, got.From)
	}
	if got.Location() != loc {
		t.Errorf("expected location %v, got %v", loc, got.Location())
	}
}

func TestInRange(t *testing.T) {
	r := march2024()

	tests := []struct {
		name     string
		ts       time.Time
		expected bool
	}{
		{name: "from is inclusive", ts: r.From, expected: true},
		{name: "to is inclusive", ts: r.To, expected: true},
		{name: "middle", ts: at(2024, time.March, 15), expected: true},
		{name: "just before from", ts: r.From.Add(-time.Nanosecond), expected: false},
		{name: "just after to", ts: r.To.Add(time.Millisecond), expected: false},
		{name: "next month", ts: at(2024, time.April, 1), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InRange(tt.ts, r); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRangeType_IsValid(t *testing.T) {
	for _, rt := range []RangeType{RangeToday, RangeWeek, RangeMonth, RangeQuarter, RangeYear, RangeCustom} {
		if !rt.IsValid() {
			t.Errorf("expected %s to be valid", rt)
		}
	}
	if RangeType("fortnight").IsValid() {
		t.Error("expected fortnight to be invalid")
	}
}
