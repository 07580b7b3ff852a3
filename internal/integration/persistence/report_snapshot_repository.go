package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/auction-ledger/backend/internal/application/adapter"
	"github.com/auction-ledger/backend/internal/domain/entity"
	"github.com/auction-ledger/backend/internal/integration/persistence/model"
)

// reportSnapshotRepository implements the adapter.SnapshotRepository interface.
type reportSnapshotRepository struct {
	db *gorm.DB
}

// NewReportSnapshotRepository creates a new report snapshot repository instance.
func NewReportSnapshotRepository(db *gorm.DB) adapter.SnapshotRepository {
	return &reportSnapshotRepository{
		db: db,
	}
}

// Create stores a new snapshot.
func (r *reportSnapshotRepository) Create(ctx context.Context, snapshot *entity.ReportSnapshot) error {
	return r.db.WithContext(ctx).Create(model.ReportSnapshotFromEntity(snapshot)).Error
}

// ListLatest retrieves up to limit snapshots, newest first.
func (r *reportSnapshotRepository) ListLatest(ctx context.Context, limit int) ([]*entity.ReportSnapshot, error) {
	var snapshotModels []model.ReportSnapshotModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshots := make([]*entity.ReportSnapshot, len(snapshotModels))
	for i := range snapshotModels {
		snapshots[i] = snapshotModels[i].ToEntity()
	}
	return snapshots, nil
}
