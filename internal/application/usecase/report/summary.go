package report

import "github.com/shopspring/decimal"

// Summary is the headline view. Every field is read from ProfitLoss or
// AccountsReceivable; nothing is recomputed here.
type Summary struct {
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	TotalCosts             decimal.Decimal `json:"totalCosts"`
	GrossProfit            decimal.Decimal `json:"grossProfit"`
	GrossMargin            float64         `json:"grossMargin"`
	OperatingExpenses      decimal.Decimal `json:"operatingExpenses"`
	NetProfit              decimal.Decimal `json:"netProfit"`
	NetMargin              float64         `json:"netMargin"`
	OutstandingReceivables decimal.Decimal `json:"outstandingReceivables"`
	CollectionRate         float64         `json:"collectionRate"`
}

func BuildSummary(pl *ProfitLoss, ar *AccountsReceivable) *Summary {
	return &Summary{
		TotalRevenue:           pl.Revenue.Total,
		TotalCosts:             pl.CostOfGoodsSold.Total,
		GrossProfit:            pl.GrossProfit,
		GrossMargin:            pl.GrossMargin,
		OperatingExpenses:      pl.OperatingExpenses.Total,
		NetProfit:              pl.NetProfit,
		NetMargin:              pl.NetMargin,
		OutstandingReceivables: ar.TotalOutstanding,
		CollectionRate:         ar.CollectionRate,
	}
}
