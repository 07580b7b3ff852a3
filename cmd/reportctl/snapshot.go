package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auction-ledger/backend/internal/domain/entity"
	"github.com/auction-ledger/backend/internal/infra/dependency"
	"github.com/auction-ledger/backend/internal/integration/entrypoint/dto"
)

func newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Store the month-to-date summary as a report snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			return withInjector(func(injector *dependency.Injector) error {
				snapshot, err := injector.SnapshotSummary.Execute(ctx)
				if err != nil {
					return fmt.Errorf("failed to take snapshot: %w", err)
				}
				resp := dto.ToReportSnapshotListResponse([]*entity.ReportSnapshot{snapshot})
				return writeJSON(cmd.OutOrStdout(), resp.Data[0])
			})
		},
	}
}
