// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodWire         PaymentMethod = "wire"
	PaymentMethodOther        PaymentMethod = "other"
)

// PaymentMethodUnspecified groups payments that carry no method.
const PaymentMethodUnspecified PaymentMethod = "unspecified"

// CostCategory represents the kind of per-vehicle cost.
type CostCategory string

const (
	CostCategoryTransport     CostCategory = "transport"
	CostCategoryRepair        CostCategory = "repair"
	CostCategoryInspection    CostCategory = "inspection"
	CostCategoryStorage       CostCategory = "storage"
	CostCategoryFees          CostCategory = "fees"
	CostCategoryRegistration  CostCategory = "registration"
	CostCategoryCleaning      CostCategory = "cleaning"
	CostCategoryOther         CostCategory = "other"
	CostCategoryUncategorized CostCategory = "uncategorized"
)

// VehicleInfo describes the vehicle sold in a purchase.
type VehicleInfo struct {
	Year  int
	Make  string
	Model string
}

// Key returns the "{year} {make} {model}" label used to group vehicles.
func (v VehicleInfo) Key() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

// Payment is a single payment received against a purchase.
type Payment struct {
	ID     uuid.UUID
	Date   time.Time
	Amount decimal.Decimal
	Method PaymentMethod // Optional, empty when unknown
}

// CostItem is a cost we incurred for a purchased vehicle.
type CostItem struct {
	ID          uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Category    CostCategory
	Vendor      *string
	Description string
}

// OurCosts groups the cost items attached to a purchase.
type OurCosts struct {
	Items []CostItem
}

// Purchase represents one won auction for one vehicle.
type Purchase struct {
	ID             uuid.UUID
	WinnerID       uuid.UUID
	WinnerName     string
	WinnerEmail    string
	VehicleInfo    VehicleInfo
	AuctionEndDate time.Time
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	Payments       []Payment
	OurCosts       *OurCosts // Optional
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Outstanding returns TotalAmount - PaidAmount.
// A negative result means the purchase is overpaid and is returned as is.
func (p *Purchase) Outstanding() decimal.Decimal {
	return p.TotalAmount.Sub(p.PaidAmount)
}

// CostItems returns the purchase cost items, or nil when it has none.
func (p *Purchase) CostItems() []CostItem {
	if p.OurCosts == nil {
		return nil
	}
	return p.OurCosts.Items
}

// HasCosts reports whether the purchase has at least one cost item.
func (p *Purchase) HasCosts() bool {
	return len(p.CostItems()) > 0
}
