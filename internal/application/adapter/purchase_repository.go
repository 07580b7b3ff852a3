// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// PurchaseRepository defines the read operations on purchases and their line items.
type PurchaseRepository interface {
	// ListForRange returns every purchase whose auction end date, or any of
	// whose payments or cost items, falls in [from, to]. Payments and cost
	// items are always loaded in full.
	ListForRange(ctx context.Context, from, to time.Time) ([]*entity.Purchase, error)

	// RecordSetVersion returns a fingerprint that changes whenever a purchase,
	// payment or cost item is added, removed or updated.
	RecordSetVersion(ctx context.Context) (string, error)
}
