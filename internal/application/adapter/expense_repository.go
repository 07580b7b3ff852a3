package adapter

import (
	"context"
	"time"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// ExpenseRepository defines the read operations on operating expenses.
type ExpenseRepository interface {
	// ListForRange returns the expenses dated in [from, to].
	ListForRange(ctx context.Context, from, to time.Time) ([]*entity.Expense, error)

	// RecordSetVersion returns a fingerprint of the expense table.
	RecordSetVersion(ctx context.Context) (string, error)
}
