package adapter

import (
	"context"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// SnapshotRepository persists report snapshots.
type SnapshotRepository interface {
	// Create stores a new snapshot.
	Create(ctx context.Context, snapshot *entity.ReportSnapshot) error

	// ListLatest returns up to limit snapshots, newest first.
	ListLatest(ctx context.Context, limit int) ([]*entity.ReportSnapshot, error)
}
