package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// VehicleMargin is the sale price of a vehicle less its in-range costs.
type VehicleMargin struct {
	PurchaseID    uuid.UUID       `json:"purchaseId"`
	Vehicle       string          `json:"vehicle"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Costs         decimal.Decimal `json:"costs"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent float64         `json:"marginPercent"`
}

// CategoryTrend is the per-category cost of one month.
type CategoryTrend struct {
	Month   string                     `json:"month"`
	Amounts map[string]decimal.Decimal `json:"amounts"`
}

// CostAnalysis breaks down per-vehicle costs and margins for a range.
type CostAnalysis struct {
	Period                DateRange                  `json:"period"`
	TotalCosts            decimal.Decimal            `json:"totalCosts"`
	ByCategory            map[string]decimal.Decimal `json:"byCategory"`
	VehicleCount          int                        `json:"vehicleCount"`
	AverageCostPerVehicle decimal.Decimal            `json:"averageCostPerVehicle"`
	MarginByVehicle       []VehicleMargin            `json:"marginByVehicle"`
	CategoryTrends        []CategoryTrend            `json:"categoryTrends"`
	AllCategories         []string                   `json:"allCategories"`
}

// BuildCostAnalysis aggregates in-range cost items. Only purchases with at
// least one in-range cost item count as vehicles or get a margin row.
func BuildCostAnalysis(r DateRange, purchases []*entity.Purchase, topN int) *CostAnalysis {
	if topN <= 0 {
		topN = DefaultTopN
	}

	lines := inRangeCostItems(r, purchases)
	byCategory := GroupSum(lines,
		func(l costLine) string { return costCategoryKey(l.item.Category) },
		func(l costLine) decimal.Decimal { return l.item.Amount },
	)

	byVehicle := newLedger()
	vehicles := make(map[string]*entity.Purchase)
	trends := make(map[string]map[string]decimal.Decimal)
	categories := make(map[string]struct{})
	total := decimal.Zero

	for _, line := range lines {
		amount := line.item.Amount
		total = total.Add(amount)

		purchaseKey := line.purchase.ID.String()
		vehicles[purchaseKey] = line.purchase
		byVehicle.add(purchaseKey, amount)

		month, category := BucketByMonth(line.at), costCategoryKey(line.item.Category)
		if trends[month] == nil {
			trends[month] = make(map[string]decimal.Decimal)
		}
		trends[month][category] = trends[month][category].Add(amount)
		categories[category] = struct{}{}
	}

	margins := make([]VehicleMargin, 0, len(byVehicle.order))
	for _, entry := range byVehicle.entries() {
		p := vehicles[entry.Key]
		margin := p.TotalAmount.Sub(entry.Amount)
		margins = append(margins, VehicleMargin{
			PurchaseID:    p.ID,
			Vehicle:       p.VehicleInfo.Key(),
			SalePrice:     p.TotalAmount,
			Costs:         entry.Amount,
			Margin:        margin,
			MarginPercent: percentOf(margin, p.TotalAmount),
		})
	}
	sort.SliceStable(margins, func(i, j int) bool {
		return margins[i].Margin.GreaterThan(margins[j].Margin)
	})
	if len(margins) > topN {
		margins = margins[:topN]
	}

	months := make([]string, 0, len(trends))
	for m := range trends {
		months = append(months, m)
	}
	sort.Strings(months)
	categoryTrends := make([]CategoryTrend, 0, len(months))
	for _, m := range months {
		categoryTrends = append(categoryTrends, CategoryTrend{Month: m, Amounts: trends[m]})
	}

	allCategories := make([]string, 0, len(categories))
	for c := range categories {
		allCategories = append(allCategories, c)
	}
	sort.Strings(allCategories)

	vehicleCount := len(byVehicle.order)
	return &CostAnalysis{
		Period:                r,
		TotalCosts:            total,
		ByCategory:            byCategory,
		VehicleCount:          vehicleCount,
		AverageCostPerVehicle: average(total, vehicleCount),
		MarginByVehicle:       margins,
		CategoryTrends:        categoryTrends,
		AllCategories:         allCategories,
	}
}
