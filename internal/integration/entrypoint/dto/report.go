package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// ReportSnapshotResponse represents a stored summary snapshot in the response.
type ReportSnapshotResponse struct {
	ID                     string          `json:"id"`
	RangeType              string          `json:"rangeType"`
	From                   string          `json:"from"`
	To                     string          `json:"to"`
	AsOf                   string          `json:"asOf"`
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	TotalCosts             decimal.Decimal `json:"totalCosts"`
	GrossProfit            decimal.Decimal `json:"grossProfit"`
	GrossMargin            float64         `json:"grossMargin"`
	OperatingExpenses      decimal.Decimal `json:"operatingExpenses"`
	NetProfit              decimal.Decimal `json:"netProfit"`
	NetMargin              float64         `json:"netMargin"`
	OutstandingReceivables decimal.Decimal `json:"outstandingReceivables"`
	CollectionRate         float64         `json:"collectionRate"`
	CreatedAt              string          `json:"createdAt"`
}

// ReportSnapshotListResponse represents the response for the snapshot list API.
type ReportSnapshotListResponse struct {
	Data []ReportSnapshotResponse `json:"data"`
}

// ToReportSnapshotListResponse converts snapshot entities to the list response DTO.
func ToReportSnapshotListResponse(snapshots []*entity.ReportSnapshot) ReportSnapshotListResponse {
	data := make([]ReportSnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		data[i] = ReportSnapshotResponse{
			ID:                     s.ID.String(),
			RangeType:              s.RangeType,
			From:                   s.From.Format(time.RFC3339),
			To:                     s.To.Format(time.RFC3339),
			AsOf:                   s.AsOf.Format(time.RFC3339),
			TotalRevenue:           s.TotalRevenue,
			TotalCosts:             s.TotalCosts,
			GrossProfit:            s.GrossProfit,
			GrossMargin:            s.GrossMargin,
			OperatingExpenses:      s.OperatingExpenses,
			NetProfit:              s.NetProfit,
			NetMargin:              s.NetMargin,
			OutstandingReceivables: s.OutstandingReceivables,
			CollectionRate:         s.CollectionRate,
			CreatedAt:              s.CreatedAt.Format(time.RFC3339),
		}
	}
	return ReportSnapshotListResponse{Data: data}
}
