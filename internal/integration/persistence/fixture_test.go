package persistence

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/auction-ledger/backend/internal/domain/entity"
	"github.com/auction-ledger/backend/internal/integration/persistence/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func seedPurchase(t *testing.T, db *gorm.DB, ended time.Time, payments []entity.Payment, costs []entity.CostItem) *entity.Purchase {
	t.Helper()
	p := &entity.Purchase{
		ID:             uuid.New(),
		WinnerID:       uuid.New(),
		WinnerName:     "Sam Bidder",
		WinnerEmail:    "sam@example.com",
		VehicleInfo:    entity.VehicleInfo{Year: 2020, Make: "Subaru", Model: "Outback"},
		AuctionEndDate: ended,
		TotalAmount:    decimal.NewFromInt(10000),
		PaidAmount:     decimal.NewFromInt(2500),
		Payments:       payments,
	}
	if len(costs) > 0 {
		p.OurCosts = &entity.OurCosts{Items: costs}
	}
	require.NoError(t, db.Create(model.PurchaseFromEntity(p)).Error)
	return p
}

func payment(date time.Time, amount int64, method entity.PaymentMethod) entity.Payment {
	return entity.Payment{ID: uuid.New(), Date: date, Amount: decimal.NewFromInt(amount), Method: method}
}

func costItem(date time.Time, amount int64, category entity.CostCategory) entity.CostItem {
	return entity.CostItem{ID: uuid.New(), Date: date, Amount: decimal.NewFromInt(amount), Category: category}
}
