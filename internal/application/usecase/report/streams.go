package report

import (
	"time"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// OperatingOutflowCategory is the cash-flow category under which standalone
// expenses are folded.
const OperatingOutflowCategory = "operating"

// paymentLine is an in-range payment together with its purchase.
type paymentLine struct {
	purchase *entity.Purchase
	payment  entity.Payment
	at       time.Time // payment date in the range location
}

// costLine is an in-range cost item together with its purchase.
type costLine struct {
	purchase *entity.Purchase
	item     entity.CostItem
	at       time.Time
}

// expenseLine is an in-range operating expense.
type expenseLine struct {
	expense *entity.Expense
	at      time.Time
}

// inRangePayments applies InRange once to every payment of every purchase.
// A payment is kept on its own date even when the purchase ended outside r.
func inRangePayments(r DateRange, purchases []*entity.Purchase) []paymentLine {
	loc := r.Location()
	var lines []paymentLine
	for _, p := range purchases {
		if p == nil {
			continue
		}
		for _, pay := range p.Payments {
			if !InRange(pay.Date, r) {
				continue
			}
			lines = append(lines, paymentLine{purchase: p, payment: pay, at: pay.Date.In(loc)})
		}
	}
	return lines
}

// inRangeCostItems applies InRange once to every cost item of every purchase.
func inRangeCostItems(r DateRange, purchases []*entity.Purchase) []costLine {
	loc := r.Location()
	var lines []costLine
	for _, p := range purchases {
		if p == nil {
			continue
		}
		for _, item := range p.CostItems() {
			if !InRange(item.Date, r) {
				continue
			}
			lines = append(lines, costLine{purchase: p, item: item, at: item.Date.In(loc)})
		}
	}
	return lines
}

// inRangeExpenses applies InRange once to every expense.
func inRangeExpenses(r DateRange, expenses []*entity.Expense) []expenseLine {
	loc := r.Location()
	var lines []expenseLine
	for _, e := range expenses {
		if e == nil || !InRange(e.Date, r) {
			continue
		}
		lines = append(lines, expenseLine{expense: e, at: e.Date.In(loc)})
	}
	return lines
}

// inRangePurchases keeps purchases whose auction ended inside r.
func inRangePurchases(r DateRange, purchases []*entity.Purchase) []*entity.Purchase {
	var kept []*entity.Purchase
	for _, p := range purchases {
		if p == nil || !InRange(p.AuctionEndDate, r) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func paymentMethodKey(m entity.PaymentMethod) string {
	if m == "" {
		return string(entity.PaymentMethodUnspecified)
	}
	return string(m)
}

func costCategoryKey(c entity.CostCategory) string {
	if c == "" {
		return string(entity.CostCategoryUncategorized)
	}
	return string(c)
}

func expenseCategoryKey(c entity.ExpenseCategory) string {
	if c == "" {
		return string(entity.ExpenseCategoryOther)
	}
	return string(c)
}
