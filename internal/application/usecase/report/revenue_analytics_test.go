package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

func TestBuildRevenueAnalytics(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	purchases := []*entity.Purchase{
		newPurchase("500", "300", at(2024, time.March, 1),
			withWinner(alice, "Alice"),
			withVehicle(2018, "Honda", "Civic"),
			withPayment(at(2024, time.March, 2), "100", entity.PaymentMethodCash),
			withPayment(at(2024, time.March, 3), "200", entity.PaymentMethodCard),
		),
		newPurchase("900", "300", at(2024, time.March, 4),
			withWinner(bob, "Bob"),
			withVehicle(2020, "Ford", "F-150"),
			withPayment(at(2024, time.March, 5), "300", entity.PaymentMethodWire),
		),
		newPurchase("400", "300", at(2024, time.March, 6),
			withWinner(carol, "Carol"),
			withVehicle(2018, "Honda", "Civic"),
			withPayment(at(2024, time.March, 7), "150", entity.PaymentMethodCash),
			withPayment(at(2024, time.February, 7), "150", entity.PaymentMethodCash),
		),
	}

	ra := BuildRevenueAnalytics(march2024(), purchases, 10)

	assertDecimal(t, "totalRevenue", "750", ra.TotalRevenue)
	if ra.TransactionCount != 4 {
		t.Errorf("expected 4 transactions, got %d", ra.TransactionCount)
	}
	assertDecimal(t, "averageTransactionValue", "187.5", ra.AverageTransactionValue)
	assertDecimal(t, "byPaymentMethod.cash", "250", ra.ByPaymentMethod["cash"])
	if len(ra.ByMonth) != 1 || ra.ByMonth[0].Key != "2024-03" {
		t.Errorf("expected single month 2024-03, got %v", ra.ByMonth)
	}

	t.Run("top customers keep first-seen order on ties", func(t *testing.T) {
		if len(ra.TopCustomers) != 3 {
			t.Fatalf("expected 3 customers, got %d", len(ra.TopCustomers))
		}
		if ra.TopCustomers[0].WinnerID != alice || ra.TopCustomers[1].WinnerID != bob {
			t.Errorf("expected Alice then Bob, got %s then %s", ra.TopCustomers[0].WinnerName, ra.TopCustomers[1].WinnerName)
		}
		if ra.TopCustomers[0].PaymentCount != 2 {
			t.Errorf("expected 2 payments for Alice, got %d", ra.TopCustomers[0].PaymentCount)
		}
		if ra.TopCustomers[2].WinnerName != "Carol" {
			t.Errorf("expected Carol last, got %s", ra.TopCustomers[2].WinnerName)
		}
		assertDecimal(t, "Carol", "150", ra.TopCustomers[2].Amount)
	})

	t.Run("top vehicles group by year make model", func(t *testing.T) {
		if len(ra.TopVehicles) != 2 {
			t.Fatalf("expected 2 vehicles, got %d", len(ra.TopVehicles))
		}
		if ra.TopVehicles[0].Vehicle != "2018 Honda Civic" {
			t.Errorf("expected 2018 Honda Civic first, got %s", ra.TopVehicles[0].Vehicle)
		}
		assertDecimal(t, "2018 Honda Civic", "450", ra.TopVehicles[0].Amount)
		if ra.TopVehicles[0].PaymentCount != 3 {
			t.Errorf("expected 3 payments, got %d", ra.TopVehicles[0].PaymentCount)
		}
	})
}

func TestBuildRevenueAnalytics_TopTen(t *testing.T) {
	var purchases []*entity.Purchase
	for i := 1; i <= 12; i++ {
		purchases = append(purchases, newPurchase("100", "0", at(2024, time.March, 1),
			withVehicle(2000+i, "Make", fmt.Sprintf("Model%d", i)),
			withPayment(at(2024, time.March, i), fmt.Sprintf("%d", i*10), entity.PaymentMethodCash),
		))
	}

	ra := BuildRevenueAnalytics(march2024(), purchases, 0)

	if len(ra.TopCustomers) != DefaultTopN {
		t.Errorf("expected %d customers, got %d", DefaultTopN, len(ra.TopCustomers))
	}
	if len(ra.TopVehicles) != DefaultTopN {
		t.Errorf("expected %d vehicles, got %d", DefaultTopN, len(ra.TopVehicles))
	}
	assertDecimal(t, "largest customer", "120", ra.TopCustomers[0].Amount)
	assertDecimal(t, "tenth customer", "30", ra.TopCustomers[9].Amount)
}

func TestBuildRevenueAnalytics_Empty(t *testing.T) {
	ra := BuildRevenueAnalytics(march2024(), nil, 10)

	assertDecimal(t, "averageTransactionValue", "0", ra.AverageTransactionValue)
	if ra.TransactionCount != 0 || len(ra.TopCustomers) != 0 || len(ra.TopVehicles) != 0 || len(ra.ByMonth) != 0 {
		t.Errorf("expected empty analytics, got %+v", ra)
	}
	if ra.TopCustomers == nil || ra.ByMonth == nil {
		t.Error("expected empty lists, not nil")
	}
}
