package report

import (
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// DayAmount is a total booked on one calendar day.
type DayAmount struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// CashInflows are in-range payments received.
type CashInflows struct {
	Total           decimal.Decimal            `json:"total"`
	ByPaymentMethod map[string]decimal.Decimal `json:"byPaymentMethod"`
	ByDay           []DayAmount                `json:"byDay"`
}

// CashOutflows are in-range cost items plus operating expenses.
type CashOutflows struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	ByDay      []DayAmount                `json:"byDay"`
}

// BalancePoint is the running cash balance at the end of one day.
type BalancePoint struct {
	Date    string          `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
	Balance decimal.Decimal `json:"balance"`
}

// CashFlow is the cash movement statement for a range.
type CashFlow struct {
	Period         DateRange       `json:"period"`
	Inflows        CashInflows     `json:"inflows"`
	Outflows       CashOutflows    `json:"outflows"`
	NetCashFlow    decimal.Decimal `json:"netCashFlow"`
	RunningBalance []BalancePoint  `json:"runningBalance"`
}

// BuildCashFlow computes daily inflows and outflows and the running balance.
// Expenses never get their own bucket; they are booked under the operating category.
func BuildCashFlow(r DateRange, purchases []*entity.Purchase, expenses []*entity.Expense) *CashFlow {
	inByMethod, inByDay := newLedger(), newLedger()
	for _, line := range inRangePayments(r, purchases) {
		inByMethod.add(paymentMethodKey(line.payment.Method), line.payment.Amount)
		inByDay.add(BucketByDay(line.at), line.payment.Amount)
	}

	outByCategory, outByDay := newLedger(), newLedger()
	for _, line := range inRangeCostItems(r, purchases) {
		outByCategory.add(costCategoryKey(line.item.Category), line.item.Amount)
		outByDay.add(BucketByDay(line.at), line.item.Amount)
	}
	for _, line := range inRangeExpenses(r, expenses) {
		outByCategory.add(OperatingOutflowCategory, line.expense.Amount)
		outByDay.add(BucketByDay(line.at), line.expense.Amount)
	}

	return &CashFlow{
		Period: r,
		Inflows: CashInflows{
			Total:           inByMethod.total,
			ByPaymentMethod: inByMethod.toMap(),
			ByDay:           dayAmounts(inByDay),
		},
		Outflows: CashOutflows{
			Total:      outByCategory.total,
			ByCategory: outByCategory.toMap(),
			ByDay:      dayAmounts(outByDay),
		},
		NetCashFlow:    inByMethod.total.Sub(outByCategory.total),
		RunningBalance: runningBalance(inByDay, outByDay),
	}
}

func dayAmounts(l *ledger) []DayAmount {
	out := make([]DayAmount, 0, len(l.order))
	for _, day := range l.sortedKeys() {
		out = append(out, DayAmount{Date: day, Amount: l.get(day)})
	}
	return out
}

// runningBalance merges the sorted union of inflow and outflow days and
// accumulates inflow - outflow over it.
func runningBalance(inflows, outflows *ledger) []BalancePoint {
	days := newLedger()
	for _, l := range []*ledger{inflows, outflows} {
		for _, k := range l.order {
			days.add(k, decimal.Zero)
		}
	}

	sortedDays := days.sortedKeys()
	entries := make([]NetEntry, 0, len(sortedDays))
	for _, day := range sortedDays {
		entries = append(entries, NetEntry{Key: day, Net: inflows.get(day).Sub(outflows.get(day))})
	}

	points := make([]BalancePoint, 0, len(entries))
	for i, running := range RunningAccumulate(entries) {
		points = append(points, BalancePoint{
			Date:    running.Key,
			Inflow:  inflows.get(running.Key),
			Outflow: outflows.get(running.Key),
			Net:     entries[i].Net,
			Balance: running.Cumulative,
		})
	}
	return points
}
