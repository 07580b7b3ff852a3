package report

import (
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// RevenueSection is in-range payment revenue.
type RevenueSection struct {
	Total           decimal.Decimal            `json:"total"`
	ByPaymentMethod map[string]decimal.Decimal `json:"byPaymentMethod"`
	ByMonth         map[string]decimal.Decimal `json:"byMonth"`
}

// CostSection is an in-range cost total grouped by category and month.
type CostSection struct {
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	ByMonth    map[string]decimal.Decimal `json:"byMonth"`
}

// MonthlyProfitLoss is the P&L of a single month bucket.
type MonthlyProfitLoss struct {
	Month             string          `json:"month"`
	Revenue           decimal.Decimal `json:"revenue"`
	CostOfGoodsSold   decimal.Decimal `json:"costOfGoodsSold"`
	OperatingExpenses decimal.Decimal `json:"operatingExpenses"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	NetProfit         decimal.Decimal `json:"netProfit"`
}

// ProfitLoss is the profit and loss statement for a range.
type ProfitLoss struct {
	Period            DateRange           `json:"period"`
	Revenue           RevenueSection      `json:"revenue"`
	CostOfGoodsSold   CostSection         `json:"costOfGoodsSold"`
	GrossProfit       decimal.Decimal     `json:"grossProfit"`
	GrossMargin       float64             `json:"grossMargin"`
	OperatingExpenses CostSection         `json:"operatingExpenses"`
	NetProfit         decimal.Decimal     `json:"netProfit"`
	NetMargin         float64             `json:"netMargin"`
	Monthly           []MonthlyProfitLoss `json:"monthly"`
}

// BuildProfitLoss computes revenue from payments, COGS from cost items and
// operating expenses from standalone expenses, all filtered into r.
func BuildProfitLoss(r DateRange, purchases []*entity.Purchase, expenses []*entity.Expense) *ProfitLoss {
	revByMethod, revByMonth := newLedger(), newLedger()
	for _, line := range inRangePayments(r, purchases) {
		revByMethod.add(paymentMethodKey(line.payment.Method), line.payment.Amount)
		revByMonth.add(BucketByMonth(line.at), line.payment.Amount)
	}

	cogsByCategory, cogsByMonth := newLedger(), newLedger()
	for _, line := range inRangeCostItems(r, purchases) {
		cogsByCategory.add(costCategoryKey(line.item.Category), line.item.Amount)
		cogsByMonth.add(BucketByMonth(line.at), line.item.Amount)
	}

	opexByCategory, opexByMonth := newLedger(), newLedger()
	for _, line := range inRangeExpenses(r, expenses) {
		opexByCategory.add(expenseCategoryKey(line.expense.Category), line.expense.Amount)
		opexByMonth.add(BucketByMonth(line.at), line.expense.Amount)
	}

	grossProfit := revByMethod.total.Sub(cogsByCategory.total)
	netProfit := grossProfit.Sub(opexByCategory.total)

	return &ProfitLoss{
		Period: r,
		Revenue: RevenueSection{
			Total:           revByMethod.total,
			ByPaymentMethod: revByMethod.toMap(),
			ByMonth:         revByMonth.toMap(),
		},
		CostOfGoodsSold: CostSection{
			Total:      cogsByCategory.total,
			ByCategory: cogsByCategory.toMap(),
			ByMonth:    cogsByMonth.toMap(),
		},
		GrossProfit: grossProfit,
		GrossMargin: percentOf(grossProfit, revByMethod.total),
		OperatingExpenses: CostSection{
			Total:      opexByCategory.total,
			ByCategory: opexByCategory.toMap(),
			ByMonth:    opexByMonth.toMap(),
		},
		NetProfit: netProfit,
		NetMargin: percentOf(netProfit, revByMethod.total),
		Monthly:   monthlyProfitLoss(revByMonth, cogsByMonth, opexByMonth),
	}
}

// monthlyProfitLoss merges the three month ledgers into an ascending series.
func monthlyProfitLoss(revenue, cogs, opex *ledger) []MonthlyProfitLoss {
	months := newLedger()
	for _, l := range []*ledger{revenue, cogs, opex} {
		for _, k := range l.order {
			months.add(k, decimal.Zero)
		}
	}

	out := make([]MonthlyProfitLoss, 0, len(months.order))
	for _, month := range months.sortedKeys() {
		gross := revenue.get(month).Sub(cogs.get(month))
		out = append(out, MonthlyProfitLoss{
			Month:             month,
			Revenue:           revenue.get(month),
			CostOfGoodsSold:   cogs.get(month),
			OperatingExpenses: opex.get(month),
			GrossProfit:       gross,
			NetProfit:         gross.Sub(opex.get(month)),
		})
	}
	return out
}
