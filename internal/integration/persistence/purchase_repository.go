// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/auction-ledger/backend/internal/application/adapter"
	"github.com/auction-ledger/backend/internal/domain/entity"
	"github.com/auction-ledger/backend/internal/integration/persistence/model"
)

// purchaseRepository implements the adapter.PurchaseRepository interface.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance.
func NewPurchaseRepository(db *gorm.DB) adapter.PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

// ListForRange retrieves purchases that ended in the range or carry a payment
// or cost item dated in it, with all of their line items.
func (r *purchaseRepository) ListForRange(ctx context.Context, from, to time.Time) ([]*entity.Purchase, error) {
	from, to = from.UTC(), to.UTC()
	db := r.db.WithContext(ctx)

	paidInRange := db.Model(&model.PaymentModel{}).
		Select("purchase_id").
		Where("date >= ? AND date <= ?", from, to)
	costInRange := db.Model(&model.CostItemModel{}).
		Select("purchase_id").
		Where("date >= ? AND date <= ?", from, to)

	var purchaseModels []model.PurchaseModel
	result := db.
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("date ASC, id ASC") }).
		Preload("CostItems", func(tx *gorm.DB) *gorm.DB { return tx.Order("date ASC, id ASC") }).
		Where("auction_end_date >= ? AND auction_end_date <= ?", from, to).
		Or("id IN (?)", paidInRange).
		Or("id IN (?)", costInRange).
		Order("auction_end_date ASC, id ASC").
		Find(&purchaseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	purchases := make([]*entity.Purchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = purchaseModels[i].ToEntity()
	}
	return purchases, nil
}

// RecordSetVersion fingerprints the purchases, payments and cost items tables.
func (r *purchaseRepository) RecordSetVersion(ctx context.Context) (string, error) {
	return tableVersions(ctx, r.db, &model.PurchaseModel{}, &model.PaymentModel{}, &model.CostItemModel{})
}

// tableVersion is the row count and latest update of one table.
type tableVersion struct {
	RowCount   int64
	LastUpdate sql.NullString
}

// tableVersions joins the per-table row count and last update of each model
// into a single fingerprint.
func tableVersions(ctx context.Context, db *gorm.DB, models ...any) (string, error) {
	version := ""
	for _, m := range models {
		var v tableVersion
		result := db.WithContext(ctx).
			Model(m).
			Select("COUNT(*) AS row_count, MAX(updated_at) AS last_update").
			Scan(&v)
		if result.Error != nil {
			return "", result.Error
		}
		version += fmt.Sprintf("%d@%s;", v.RowCount, v.LastUpdate.String)
	}
	return version, nil
}
