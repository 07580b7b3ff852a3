package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/auction-ledger/backend/internal/application/adapter"
	"github.com/auction-ledger/backend/internal/domain/entity"
	"github.com/auction-ledger/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// ListForRange retrieves the expenses dated in the range.
func (r *expenseRepository) ListForRange(ctx context.Context, from, to time.Time) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from.UTC(), to.UTC()).
		Order("date ASC, id ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

// RecordSetVersion fingerprints the expenses table.
func (r *expenseRepository) RecordSetVersion(ctx context.Context) (string, error) {
	return tableVersions(ctx, r.db, &model.ExpenseModel{})
}
