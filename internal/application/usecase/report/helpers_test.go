package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// at returns noon UTC of the given day.
func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func march2024() DateRange {
	return ResolveRange(RangeMonth, at(2024, time.March, 15), nil, nil)
}

type purchaseOption func(*entity.Purchase)

func newPurchase(total, paid string, ended time.Time, opts ...purchaseOption) *entity.Purchase {
	p := &entity.Purchase{
		ID:             uuid.New(),
		WinnerID:       uuid.New(),
		WinnerName:     "Dana Buyer",
		WinnerEmail:    "dana@example.com",
		VehicleInfo:    entity.VehicleInfo{Year: 2019, Make: "Toyota", Model: "Corolla"},
		AuctionEndDate: ended,
		TotalAmount:    dec(total),
		PaidAmount:     dec(paid),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func withWinner(id uuid.UUID, name string) purchaseOption {
	return func(p *entity.Purchase) {
		p.WinnerID = id
		p.WinnerName = name
	}
}

func withVehicle(year int, brand, model string) purchaseOption {
	return func(p *entity.Purchase) {
		p.VehicleInfo = entity.VehicleInfo{Year: year, Make: brand, Model: model}
	}
}

func withPayment(date time.Time, amount string, method entity.PaymentMethod) purchaseOption {
	return func(p *entity.Purchase) {
		p.Payments = append(p.Payments, entity.Payment{
			ID:     uuid.New(),
			Date:   date,
			Amount: dec(amount),
			Method: method,
		})
	}
}

func withCost(date time.Time, amount string, category entity.CostCategory) purchaseOption {
	return func(p *entity.Purchase) {
		if p.OurCosts == nil {
			p.OurCosts = &entity.OurCosts{}
		}
		p.OurCosts.Items = append(p.OurCosts.Items, entity.CostItem{
			ID:       uuid.New(),
			Date:     date,
			Amount:   dec(amount),
			Category: category,
		})
	}
}

func newExpense(date time.Time, amount string, category entity.ExpenseCategory) *entity.Expense {
	return &entity.Expense{
		ID:       uuid.New(),
		Category: category,
		Amount:   dec(amount),
		Date:     date,
	}
}

func assertDecimal(t *testing.T, name string, expected string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(expected)) {
		t.Errorf("expected %s = %s, got %s", name, expected, got.String())
	}
}

func sumValues(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
