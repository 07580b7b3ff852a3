package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/auction-ledger/backend/internal/application/adapter"
	"github.com/auction-ledger/backend/internal/domain/entity"
)

// SnapshotSummaryUseCase persists the month-to-date Summary.
type SnapshotSummaryUseCase struct {
	generate     *GenerateReportsUseCase
	snapshotRepo adapter.SnapshotRepository
	clock        adapter.Clock
}

// NewSnapshotSummaryUseCase creates a new SnapshotSummaryUseCase instance.
func NewSnapshotSummaryUseCase(
	generate *GenerateReportsUseCase,
	snapshotRepo adapter.SnapshotRepository,
	clock adapter.Clock,
) *SnapshotSummaryUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &SnapshotSummaryUseCase{
		generate:     generate,
		snapshotRepo: snapshotRepo,
		clock:        clock,
	}
}

// Execute generates the current month's reports and stores their summary.
func (uc *SnapshotSummaryUseCase) Execute(ctx context.Context) (*entity.ReportSnapshot, error) {
	now := uc.clock.Now()
	bundle, err := uc.generate.Execute(ctx, GenerateReportsInput{RangeType: RangeMonth, AsOf: &now})
	if err != nil {
		return nil, fmt.Errorf("failed to generate reports: %w", err)
	}

	summary := bundle.Summary
	snapshot := &entity.ReportSnapshot{
		ID:                     uuid.New(),
		RangeType:              string(bundle.Range.Type),
		From:                   bundle.Range.From,
		To:                     bundle.Range.To,
		AsOf:                   bundle.GeneratedAt,
		TotalRevenue:           summary.TotalRevenue,
		TotalCosts:             summary.TotalCosts,
		GrossProfit:            summary.GrossProfit,
		GrossMargin:            summary.GrossMargin,
		OperatingExpenses:      summary.OperatingExpenses,
		NetProfit:              summary.NetProfit,
		NetMargin:              summary.NetMargin,
		OutstandingReceivables: summary.OutstandingReceivables,
		CollectionRate:         summary.CollectionRate,
		CreatedAt:              now.UTC(),
	}

	if err := uc.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save report snapshot: %w", err)
	}

	slog.Info("Report snapshot saved",
		"snapshotID", snapshot.ID,
		"from", snapshot.From,
		"to", snapshot.To,
		"netProfit", snapshot.NetProfit.String(),
	)
	return snapshot, nil
}
