package report

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	monthKeyLayout = "2006-01"
	dayKeyLayout   = "2006-01-02"
)

var hundred = decimal.NewFromInt(100)

// KeyAmount is a keyed monetary total.
type KeyAmount struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// GroupSum accumulates valueFn over records grouped by keyFn in a single pass.
func GroupSum[T any](records []T, keyFn func(T) string, valueFn func(T) decimal.Decimal) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, rec := range records {
		key := keyFn(rec)
		sums[key] = sums[key].Add(valueFn(rec))
	}
	return sums
}

// RankDesc orders entries by amount descending and keeps at most limit of them.
// Equal amounts keep their input order. A limit <= 0 keeps every entry.
func RankDesc(entries []KeyAmount, limit int) []KeyAmount {
	ranked := make([]KeyAmount, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SortedByKey converts a mapping to a list ordered by key ascending.
func SortedByKey(sums map[string]decimal.Decimal) []KeyAmount {
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]KeyAmount, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyAmount{Key: k, Amount: sums[k]})
	}
	return out
}

// BucketByMonth returns the "YYYY-MM" period key of t in t's location.
func BucketByMonth(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// BucketByDay returns the "YYYY-MM-DD" period key of t in t's location.
func BucketByDay(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// NetEntry is the net movement recorded under one period key.
type NetEntry struct {
	Key string
	Net decimal.Decimal
}

// RunningPoint is the cumulative value reached at one period key.
type RunningPoint struct {
	Key        string
	Cumulative decimal.Decimal
}

// RunningAccumulate folds entries into a running total.
// Entries must already be sorted ascending by key.
func RunningAccumulate(entries []NetEntry) []RunningPoint {
	points := make([]RunningPoint, 0, len(entries))
	running := decimal.Zero
	for _, e := range entries {
		running = running.Add(e.Net)
		points = append(points, RunningPoint{Key: e.Key, Cumulative: running})
	}
	return points
}

// AgingBucket is one of the four mutually exclusive receivable age classes.
type AgingBucket string

const (
	AgingCurrent        AgingBucket = "current"
	AgingThirtyDays     AgingBucket = "thirtyDays"
	AgingSixtyDays      AgingBucket = "sixtyDays"
	AgingNinetyDaysPlus AgingBucket = "ninetyDaysPlus"
)

// AgingPolicy holds the day boundaries used to age receivables.
type AgingPolicy struct {
	CurrentMaxDays   int
	ThirtyMaxDays    int
	SixtyMaxDays     int
	PastDueGraceDays int
}

// DefaultAgingPolicy returns the 30/60/90 buckets with a 30-day grace period.
func DefaultAgingPolicy() AgingPolicy {
	return AgingPolicy{
		CurrentMaxDays:   30,
		ThirtyMaxDays:    60,
		SixtyMaxDays:     90,
		PastDueGraceDays: 30,
	}
}

// Bucket classifies an elapsed day count.
func (p AgingPolicy) Bucket(daysElapsed int) AgingBucket {
	switch {
	case daysElapsed <= p.CurrentMaxDays:
		return AgingCurrent
	case daysElapsed <= p.ThirtyMaxDays:
		return AgingThirtyDays
	case daysElapsed <= p.SixtyMaxDays:
		return AgingSixtyDays
	default:
		return AgingNinetyDaysPlus
	}
}

// DaysPastDue applies the grace period to an elapsed day count, never below zero.
func (p AgingPolicy) DaysPastDue(daysElapsed int) int {
	if overdue := daysElapsed - p.PastDueGraceDays; overdue > 0 {
		return overdue
	}
	return 0
}

// ClassifyAging buckets daysElapsed with the default policy.
func ClassifyAging(daysElapsed int) AgingBucket {
	return DefaultAgingPolicy().Bucket(daysElapsed)
}

// DaysElapsed returns floor((now - ref) / 1 day).
func DaysElapsed(now, ref time.Time) int {
	return int(math.Floor(float64(now.Sub(ref)) / float64(24*time.Hour)))
}

// AgingBreakdown partitions an outstanding amount across aging buckets.
type AgingBreakdown struct {
	Current        decimal.Decimal `json:"current"`
	ThirtyDays     decimal.Decimal `json:"thirtyDays"`
	SixtyDays      decimal.Decimal `json:"sixtyDays"`
	NinetyDaysPlus decimal.Decimal `json:"ninetyDaysPlus"`
}

// Add books amount into bucket.
func (a *AgingBreakdown) Add(bucket AgingBucket, amount decimal.Decimal) {
	switch bucket {
	case AgingCurrent:
		a.Current = a.Current.Add(amount)
	case AgingThirtyDays:
		a.ThirtyDays = a.ThirtyDays.Add(amount)
	case AgingSixtyDays:
		a.SixtyDays = a.SixtyDays.Add(amount)
	case AgingNinetyDaysPlus:
		a.NinetyDaysPlus = a.NinetyDaysPlus.Add(amount)
	}
}

// Total returns the sum of all buckets.
func (a AgingBreakdown) Total() decimal.Decimal {
	return a.Current.Add(a.ThirtyDays).Add(a.SixtyDays).Add(a.NinetyDaysPlus)
}

// ledger is an insertion-ordered group-and-sum accumulator.
type ledger struct {
	order  []string
	sums   map[string]decimal.Decimal
	counts map[string]int
	total  decimal.Decimal
}

func newLedger() *ledger {
	return &ledger{
		sums:   make(map[string]decimal.Decimal),
		counts: make(map[string]int),
	}
}

func (l *ledger) add(key string, amount decimal.Decimal) {
	if _, seen := l.sums[key]; !seen {
		l.order = append(l.order, key)
	}
	l.sums[key] = l.sums[key].Add(amount)
	l.counts[key]++
	l.total = l.total.Add(amount)
}

func (l *ledger) get(key string) decimal.Decimal {
	return l.sums[key]
}

func (l *ledger) count(key string) int {
	return l.counts[key]
}

// entries returns the totals in first-seen key order.
func (l *ledger) entries() []KeyAmount {
	out := make([]KeyAmount, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, KeyAmount{Key: k, Amount: l.sums[k]})
	}
	return out
}

func (l *ledger) toMap() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.sums))
	for k, v := range l.sums {
		out[k] = v
	}
	return out
}

// sortedKeys returns the ledger keys ascending.
func (l *ledger) sortedKeys() []string {
	keys := make([]string, len(l.order))
	copy(keys, l.order)
	sort.Strings(keys)
	return keys
}

// percentOf returns part/whole*100 rounded to two places, 0 when whole is zero.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(whole).Round(2).Float64()
	return pct
}

// average returns total/count rounded to two places, 0 when count is zero.
func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}
