package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// DefaultTopN is how many customers, vehicles or margins a ranked list keeps.
const DefaultTopN = 10

// CustomerRevenue is the revenue received from one winner.
type CustomerRevenue struct {
	WinnerID     uuid.UUID       `json:"winnerId"`
	WinnerName   string          `json:"winnerName"`
	WinnerEmail  string          `json:"winnerEmail"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentCount int             `json:"paymentCount"`
}

// VehicleRevenue is the revenue received for one vehicle key.
type VehicleRevenue struct {
	Vehicle      string          `json:"vehicle"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentCount int             `json:"paymentCount"`
}

// RevenueAnalytics breaks in-range revenue down by method, month, customer and vehicle.
type RevenueAnalytics struct {
	Period                  DateRange                  `json:"period"`
	TotalRevenue            decimal.Decimal            `json:"totalRevenue"`
	TransactionCount        int                        `json:"transactionCount"`
	AverageTransactionValue decimal.Decimal            `json:"averageTransactionValue"`
	ByPaymentMethod         map[string]decimal.Decimal `json:"byPaymentMethod"`
	ByMonth                 []KeyAmount                `json:"byMonth"`
	TopCustomers            []CustomerRevenue          `json:"topCustomers"`
	TopVehicles             []VehicleRevenue           `json:"topVehicles"`
}

// BuildRevenueAnalytics ranks customers and vehicles by in-range payments.
// Ties keep the order in which the customer or vehicle was first seen.
func BuildRevenueAnalytics(r DateRange, purchases []*entity.Purchase, topN int) *RevenueAnalytics {
	if topN <= 0 {
		topN = DefaultTopN
	}

	lines := inRangePayments(r, purchases)
	byMethod, byMonth := newLedger(), newLedger()
	byCustomer, byVehicle := newLedger(), newLedger()
	customers := make(map[string]*entity.Purchase)

	for _, line := range lines {
		amount := line.payment.Amount
		byMethod.add(paymentMethodKey(line.payment.Method), amount)
		byMonth.add(BucketByMonth(line.at), amount)

		customerKey := line.purchase.WinnerID.String()
		if _, ok := customers[customerKey]; !ok {
			customers[customerKey] = line.purchase
		}
		byCustomer.add(customerKey, amount)
		byVehicle.add(line.purchase.VehicleInfo.Key(), amount)
	}

	topCustomers := make([]CustomerRevenue, 0, topN)
	for _, ranked := range RankDesc(byCustomer.entries(), topN) {
		p := customers[ranked.Key]
		topCustomers = append(topCustomers, CustomerRevenue{
			WinnerID:     p.WinnerID,
			WinnerName:   p.WinnerName,
			WinnerEmail:  p.WinnerEmail,
			Amount:       ranked.Amount,
			PaymentCount: byCustomer.count(ranked.Key),
		})
	}

	topVehicles := make([]VehicleRevenue, 0, topN)
	for _, ranked := range RankDesc(byVehicle.entries(), topN) {
		topVehicles = append(topVehicles, VehicleRevenue{
			Vehicle:      ranked.Key,
			Amount:       ranked.Amount,
			PaymentCount: byVehicle.count(ranked.Key),
		})
	}

	return &RevenueAnalytics{
		Period:                  r,
		TotalRevenue:            byMethod.total,
		TransactionCount:        len(lines),
		AverageTransactionValue: average(byMethod.total, len(lines)),
		ByPaymentMethod:         byMethod.toMap(),
		ByMonth:                 SortedByKey(byMonth.sums),
		TopCustomers:            topCustomers,
		TopVehicles:             topVehicles,
	}
}
