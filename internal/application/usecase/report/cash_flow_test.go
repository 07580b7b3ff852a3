package report

import (
	"testing"
	"time"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

func TestBuildCashFlow_RunningBalance(t *testing.T) {
	purchase := newPurchase("110", "110", at(2024, time.March, 1),
		withPayment(at(2024, time.March, 3), "10", entity.PaymentMethodCash),
		withPayment(at(2024, time.March, 1), "100", entity.PaymentMethodCash),
		withCost(at(2024, time.March, 2), "40", entity.CostCategoryTransport),
	)

	cf := BuildCashFlow(march2024(), []*entity.Purchase{purchase}, nil)

	expected := []struct {
		date    string
		balance string
	}{
		{"2024-03-01", "100"},
		{"2024-03-02", "60"},
		{"2024-03-03", "70"},
	}
	if len(cf.RunningBalance) != len(expected) {
		t.Fatalf("expected %d balance points, got %d", len(expected), len(cf.RunningBalance))
	}
	for i, e := range expected {
		point := cf.RunningBalance[i]
		if point.Date != e.date {
			t.Errorf("expected date %s at %d, got %s", e.date, i, point.Date)
		}
		assertDecimal(t, "balance "+e.date, e.balance, point.Balance)
	}
	assertDecimal(t, "outflow 2024-03-02", "40", cf.RunningBalance[1].Outflow)
	assertDecimal(t, "net 2024-03-02", "-40", cf.RunningBalance[1].Net)

	assertDecimal(t, "netCashFlow", "70", cf.NetCashFlow)
	last := cf.RunningBalance[len(cf.RunningBalance)-1]
	if !last.Balance.Equal(cf.NetCashFlow) {
		t.Errorf("expected last balance %s to equal netCashFlow %s", last.Balance, cf.NetCashFlow)
	}
}

func TestBuildCashFlow(t *testing.T) {
	purchase := newPurchase("1000", "700", at(2024, time.March, 1),
		withPayment(at(2024, time.March, 5), "500", entity.PaymentMethodCard),
		withPayment(at(2024, time.March, 5), "200", entity.PaymentMethodCash),
		withPayment(at(2024, time.April, 2), "300", entity.PaymentMethodCash),
		withCost(at(2024, time.March, 6), "120", entity.CostCategoryRepair),
	)
	expenses := []*entity.Expense{
		newExpense(at(2024, time.March, 6), "80", entity.ExpenseCategoryRent),
		newExpense(at(2024, time.March, 9), "20", entity.ExpenseCategorySoftware),
	}

	cf := BuildCashFlow(march2024(), []*entity.Purchase{purchase}, expenses)

	t.Run("inflows", func(t *testing.T) {
		assertDecimal(t, "inflows.total", "700", cf.Inflows.Total)
		assertDecimal(t, "inflows.byPaymentMethod.card", "500", cf.Inflows.ByPaymentMethod["card"])
		if len(cf.Inflows.ByDay) != 1 || cf.Inflows.ByDay[0].Date != "2024-03-05" {
			t.Fatalf("expected a single inflow day 2024-03-05, got %v", cf.Inflows.ByDay)
		}
		assertDecimal(t, "inflows.byDay", "700", cf.Inflows.ByDay[0].Amount)
	})

	t.Run("expenses fold into operating", func(t *testing.T) {
		assertDecimal(t, "outflows.total", "220", cf.Outflows.Total)
		assertDecimal(t, "outflows.byCategory.operating", "100", cf.Outflows.ByCategory[OperatingOutflowCategory])
		assertDecimal(t, "outflows.byCategory.repair", "120", cf.Outflows.ByCategory["repair"])
		if _, ok := cf.Outflows.ByCategory["rent"]; ok {
			t.Error("expected expense categories not to appear as outflow categories")
		}
		if len(cf.Outflows.ByCategory) != 2 {
			t.Errorf("expected 2 outflow categories, got %v", cf.Outflows.ByCategory)
		}
	})

	t.Run("conservation", func(t *testing.T) {
		if !sumValues(cf.Inflows.ByPaymentMethod).Equal(cf.Inflows.Total) {
			t.Error("expected inflows by method to sum to total")
		}
		if !sumValues(cf.Outflows.ByCategory).Equal(cf.Outflows.Total) {
			t.Error("expected outflows by category to sum to total")
		}
	})

	t.Run("running balance spans union of days", func(t *testing.T) {
		expected := []string{"2024-03-05", "2024-03-06", "2024-03-09"}
		if len(cf.RunningBalance) != len(expected) {
			t.Fatalf("expected %d points, got %d", len(expected), len(cf.RunningBalance))
		}
		for i, day := range expected {
			if cf.RunningBalance[i].Date != day {
				t.Errorf("expected %s at %d, got %s", day, i, cf.RunningBalance[i].Date)
			}
		}
		assertDecimal(t, "netCashFlow", "480", cf.NetCashFlow)
		assertDecimal(t, "last balance", "480", cf.RunningBalance[2].Balance)
	})
}
