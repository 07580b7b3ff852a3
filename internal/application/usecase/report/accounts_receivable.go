package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// CustomerBalance is what one winner still owes.
type CustomerBalance struct {
	WinnerID          uuid.UUID       `json:"winnerId"`
	WinnerName        string          `json:"winnerName"`
	WinnerEmail       string          `json:"winnerEmail"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	InvoiceCount      int             `json:"invoiceCount"`
	OldestInvoiceDate time.Time       `json:"oldestInvoiceDate"`
	DaysPastDue       int             `json:"daysPastDue"`
	Aging             AgingBreakdown  `json:"aging"`
}

// OverpaidSummary counts purchases paid beyond their total. Amount is the
// overpaid sum as a positive number.
type OverpaidSummary struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// AccountsReceivable is the receivables aging report as of a point in time.
type AccountsReceivable struct {
	Period           DateRange         `json:"period"`
	AsOf             time.Time         `json:"asOf"`
	TotalOutstanding decimal.Decimal   `json:"totalOutstanding"`
	TotalPaid        decimal.Decimal   `json:"totalPaid"`
	CollectionRate   float64           `json:"collectionRate"`
	Aging            AgingBreakdown    `json:"aging"`
	CustomerBalances []CustomerBalance `json:"customerBalances"`
	Overpaid         OverpaidSummary   `json:"overpaid"`
}

// BuildAccountsReceivable ages the outstanding balance of every purchase whose
// auction ended in r. Days are counted from the auction end date to now.
// Purchases with a negative outstanding are reported under Overpaid and
// never fold into the outstanding totals.
func BuildAccountsReceivable(r DateRange, purchases []*entity.Purchase, now time.Time, policy AgingPolicy) *AccountsReceivable {
	report := &AccountsReceivable{
		Period:           r,
		AsOf:             now,
		TotalOutstanding: decimal.Zero,
		TotalPaid:        decimal.Zero,
		Overpaid:         OverpaidSummary{Amount: decimal.Zero},
	}

	var order []string
	balances := make(map[string]*CustomerBalance)

	for _, p := range inRangePurchases(r, purchases) {
		report.TotalPaid = report.TotalPaid.Add(p.PaidAmount)

		outstanding := p.Outstanding()
		if outstanding.IsNegative() {
			report.Overpaid.Count++
			report.Overpaid.Amount = report.Overpaid.Amount.Add(outstanding.Neg())
			continue
		}
		if !outstanding.IsPositive() {
			continue
		}

		bucket := policy.Bucket(DaysElapsed(now, p.AuctionEndDate))
		report.TotalOutstanding = report.TotalOutstanding.Add(outstanding)
		report.Aging.Add(bucket, outstanding)

		key := p.WinnerID.String()
		balance, ok := balances[key]
		if !ok {
			balance = &CustomerBalance{
				WinnerID:          p.WinnerID,
				WinnerName:        p.WinnerName,
				WinnerEmail:       p.WinnerEmail,
				OldestInvoiceDate: p.AuctionEndDate,
			}
			balances[key] = balance
			order = append(order, key)
		}
		balance.TotalAmount = balance.TotalAmount.Add(p.TotalAmount)
		balance.PaidAmount = balance.PaidAmount.Add(p.PaidAmount)
		balance.Outstanding = balance.Outstanding.Add(outstanding)
		balance.InvoiceCount++
		balance.Aging.Add(bucket, outstanding)
		if p.AuctionEndDate.Before(balance.OldestInvoiceDate) {
			balance.OldestInvoiceDate = p.AuctionEndDate
		}
	}

	report.CustomerBalances = make([]CustomerBalance, 0, len(order))
	for _, key := range order {
		balance := balances[key]
		balance.DaysPastDue = policy.DaysPastDue(DaysElapsed(now, balance.OldestInvoiceDate))
		report.CustomerBalances = append(report.CustomerBalances, *balance)
	}
	sort.SliceStable(report.CustomerBalances, func(i, j int) bool {
		return report.CustomerBalances[i].Outstanding.GreaterThan(report.CustomerBalances[j].Outstanding)
	})

	report.CollectionRate = collectionRate(report.TotalPaid, report.TotalOutstanding)
	return report
}

// collectionRate is paid / (paid + outstanding) * 100, or 100 when nothing was billed.
func collectionRate(paid, outstanding decimal.Decimal) float64 {
	billed := paid.Add(outstanding)
	if billed.IsZero() {
		return 100
	}
	return percentOf(paid, billed)
}
