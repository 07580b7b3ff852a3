package report

import (
	"context"
	"fmt"

	"github.com/auction-ledger/backend/internal/application/adapter"
	"github.com/auction-ledger/backend/internal/domain/entity"
	domainerror "github.com/auction-ledger/backend/internal/domain/error"
)

const (
	DefaultSnapshotLimit = 30
	MaxSnapshotLimit     = 365
)

// ListSnapshotsUseCase lists stored report snapshots.
type ListSnapshotsUseCase struct {
	snapshotRepo adapter.SnapshotRepository
}

// NewListSnapshotsUseCase creates a new ListSnapshotsUseCase instance.
func NewListSnapshotsUseCase(snapshotRepo adapter.SnapshotRepository) *ListSnapshotsUseCase {
	return &ListSnapshotsUseCase{snapshotRepo: snapshotRepo}
}

// Execute returns up to limit snapshots, newest first. A zero limit uses the default.
func (uc *ListSnapshotsUseCase) Execute(ctx context.Context, limit int) ([]*entity.ReportSnapshot, error) {
	if limit == 0 {
		limit = DefaultSnapshotLimit
	}
	if limit < 0 || limit > MaxSnapshotLimit {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidLimit,
			domainerror.ErrInvalidLimit.Error(),
			domainerror.ErrInvalidLimit,
		)
	}

	snapshots, err := uc.snapshotRepo.ListLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list report snapshots: %w", err)
	}
	return snapshots, nil
}
