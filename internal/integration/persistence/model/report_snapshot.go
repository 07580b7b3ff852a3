package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// ReportSnapshotModel represents the report_snapshots table in the database.
type ReportSnapshotModel struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RangeType              string          `gorm:"type:varchar(10);not null"`
	FromDate               time.Time       `gorm:"column:from_date;type:timestamp;not null"`
	ToDate                 time.Time       `gorm:"column:to_date;type:timestamp;not null"`
	AsOf                   time.Time       `gorm:"type:timestamp;not null"`
	TotalRevenue           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalCosts             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	GrossProfit            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	GrossMargin            float64         `gorm:"not null"`
	OperatingExpenses      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetProfit              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetMargin              float64         `gorm:"not null"`
	OutstandingReceivables decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CollectionRate         float64         `gorm:"not null"`
	CreatedAt              time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the ReportSnapshotModel.
func (ReportSnapshotModel) TableName() string {
	return "report_snapshots"
}

// ToEntity converts a ReportSnapshotModel to a domain ReportSnapshot entity.
func (m *ReportSnapshotModel) ToEntity() *entity.ReportSnapshot {
	return &entity.ReportSnapshot{
		ID:                     m.ID,
		RangeType:              m.RangeType,
		From:                   m.FromDate,
		To:                     m.ToDate,
		AsOf:                   m.AsOf,
		TotalRevenue:           m.TotalRevenue,
		TotalCosts:             m.TotalCosts,
		GrossProfit:            m.GrossProfit,
		GrossMargin:            m.GrossMargin,
		OperatingExpenses:      m.OperatingExpenses,
		NetProfit:              m.NetProfit,
		NetMargin:              m.NetMargin,
		OutstandingReceivables: m.OutstandingReceivables,
		CollectionRate:         m.CollectionRate,
		CreatedAt:              m.CreatedAt,
	}
}

// ReportSnapshotFromEntity creates a ReportSnapshotModel from a domain ReportSnapshot entity.
func ReportSnapshotFromEntity(snapshot *entity.ReportSnapshot) *ReportSnapshotModel {
	return &ReportSnapshotModel{
		ID:                     snapshot.ID,
		RangeType:              snapshot.RangeType,
		FromDate:               snapshot.From.UTC(),
		ToDate:                 snapshot.To.UTC(),
		AsOf:                   snapshot.AsOf.UTC(),
		TotalRevenue:           snapshot.TotalRevenue,
		TotalCosts:             snapshot.TotalCosts,
		GrossProfit:            snapshot.GrossProfit,
		GrossMargin:            snapshot.GrossMargin,
		OperatingExpenses:      snapshot.OperatingExpenses,
		NetProfit:              snapshot.NetProfit,
		NetMargin:              snapshot.NetMargin,
		OutstandingReceivables: snapshot.OutstandingReceivables,
		CollectionRate:         snapshot.CollectionRate,
		CreatedAt:              snapshot.CreatedAt,
	}
}
