// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// PurchaseModel represents the purchases table in the database.
type PurchaseModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WinnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	WinnerName     string          `gorm:"type:varchar(255);not null"`
	WinnerEmail    string          `gorm:"type:varchar(255)"`
	VehicleYear    int             `gorm:"type:integer;not null"`
	VehicleMake    string          `gorm:"type:varchar(100);not null"`
	VehicleModel   string          `gorm:"type:varchar(100);not null"`
	AuctionEndDate time.Time       `gorm:"type:timestamp;not null;index"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Payments  []PaymentModel  `gorm:"foreignKey:PurchaseID;references:ID;constraint:OnDelete:CASCADE"`
	CostItems []CostItemModel `gorm:"foreignKey:PurchaseID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the PurchaseModel.
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToEntity converts a PurchaseModel and its loaded line items to a domain Purchase entity.
func (m *PurchaseModel) ToEntity() *entity.Purchase {
	payments := make([]entity.Payment, len(m.Payments))
	for i, pm := range m.Payments {
		payments[i] = pm.ToEntity()
	}

	var ourCosts *entity.OurCosts
	if len(m.CostItems) > 0 {
		items := make([]entity.CostItem, len(m.CostItems))
		for i, cm := range m.CostItems {
			items[i] = cm.ToEntity()
		}
		ourCosts = &entity.OurCosts{Items: items}
	}

	return &entity.Purchase{
		ID:          m.ID,
		WinnerID:    m.WinnerID,
		WinnerName:  m.WinnerName,
		WinnerEmail: m.WinnerEmail,
		VehicleInfo: entity.VehicleInfo{
			Year:  m.VehicleYear,
			Make:  m.VehicleMake,
			Model: m.VehicleModel,
		},
		AuctionEndDate: m.AuctionEndDate,
		TotalAmount:    m.TotalAmount,
		PaidAmount:     m.PaidAmount,
		Payments:       payments,
		OurCosts:       ourCosts,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// PurchaseFromEntity creates a PurchaseModel, with its line items, from a domain Purchase entity.
func PurchaseFromEntity(purchase *entity.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		ID:             purchase.ID,
		WinnerID:       purchase.WinnerID,
		WinnerName:     purchase.WinnerName,
		WinnerEmail:    purchase.WinnerEmail,
		VehicleYear:    purchase.VehicleInfo.Year,
		VehicleMake:    purchase.VehicleInfo.Make,
		VehicleModel:   purchase.VehicleInfo.Model,
		AuctionEndDate: purchase.AuctionEndDate.UTC(),
		TotalAmount:    purchase.TotalAmount,
		PaidAmount:     purchase.PaidAmount,
		CreatedAt:      purchase.CreatedAt,
		UpdatedAt:      purchase.UpdatedAt,
	}
	for _, payment := range purchase.Payments {
		m.Payments = append(m.Payments, PaymentFromEntity(purchase.ID, payment))
	}
	for _, item := range purchase.CostItems() {
		m.CostItems = append(m.CostItems, CostItemFromEntity(purchase.ID, item))
	}
	return m
}

// PaymentModel represents the purchase_payments table in the database.
type PaymentModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date       time.Time       `gorm:"type:timestamp;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Method     string          `gorm:"type:varchar(20)"` // Empty when unknown
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "purchase_payments"
}

// ToEntity converts a PaymentModel to a domain Payment.
func (m PaymentModel) ToEntity() entity.Payment {
	return entity.Payment{
		ID:     m.ID,
		Date:   m.Date,
		Amount: m.Amount,
		Method: entity.PaymentMethod(m.Method),
	}
}

// PaymentFromEntity creates a PaymentModel from a domain Payment.
func PaymentFromEntity(purchaseID uuid.UUID, payment entity.Payment) PaymentModel {
	return PaymentModel{
		ID:         payment.ID,
		PurchaseID: purchaseID,
		Date:       payment.Date.UTC(),
		Amount:     payment.Amount,
		Method:     string(payment.Method),
	}
}

// CostItemModel represents the purchase_cost_items table in the database.
type CostItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:timestamp;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(30)"`
	Vendor      *string         `gorm:"type:varchar(255)"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CostItemModel.
func (CostItemModel) TableName() string {
	return "purchase_cost_items"
}

// ToEntity converts a CostItemModel to a domain CostItem.
func (m CostItemModel) ToEntity() entity.CostItem {
	return entity.CostItem{
		ID:          m.ID,
		Date:        m.Date,
		Amount:      m.Amount,
		Category:    entity.CostCategory(m.Category),
		Vendor:      m.Vendor,
		Description: m.Description,
	}
}

// CostItemFromEntity creates a CostItemModel from a domain CostItem.
func CostItemFromEntity(purchaseID uuid.UUID, item entity.CostItem) CostItemModel {
	return CostItemModel{
		ID:          item.ID,
		PurchaseID:  purchaseID,
		Date:        item.Date.UTC(),
		Amount:      item.Amount,
		Category:    string(item.Category),
		Vendor:      item.Vendor,
		Description: item.Description,
	}
}
