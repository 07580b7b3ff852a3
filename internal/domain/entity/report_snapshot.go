package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportSnapshot is a persisted copy of the headline figures of one report run.
type ReportSnapshot struct {
	ID                     uuid.UUID
	RangeType              string
	From                   time.Time
	To                     time.Time
	AsOf                   time.Time
	TotalRevenue           decimal.Decimal
	TotalCosts             decimal.Decimal
	GrossProfit            decimal.Decimal
	GrossMargin            float64
	OperatingExpenses      decimal.Decimal
	NetProfit              decimal.Decimal
	NetMargin              float64
	OutstandingReceivables decimal.Decimal
	CollectionRate         float64
	CreatedAt              time.Time
}
