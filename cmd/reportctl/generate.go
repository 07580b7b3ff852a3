package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/auction-ledger/backend/config"
	"github.com/auction-ledger/backend/internal/application/usecase/report"
	"github.com/auction-ledger/backend/internal/infra/db"
	"github.com/auction-ledger/backend/internal/infra/dependency"
	"github.com/auction-ledger/backend/internal/integration/persistence/model"
)

const commandTimeout = 60 * time.Second

// stderr receives log output so stdout stays valid JSON.
var stderr io.Writer = os.Stderr

type generateCmd struct {
	rangeType string
	from      string
	to        string
	asOf      string
	kind      string
}

func newGenerateCmd() *cobra.Command {
	gc := &generateCmd{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute reports for a range and print them as JSON",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.rangeType, "range", string(report.RangeMonth), "Range: today, week, month, quarter, year or custom")
	cmd.Flags().StringVar(&gc.from, "from", "", "Custom range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&gc.to, "to", "", "Custom range end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&gc.asOf, "as-of", "", "Instant to age receivables against (RFC3339), defaults to now")
	cmd.Flags().StringVar(&gc.kind, "report", "", "Print a single report: "+kindList())

	return cmd
}

func (gc *generateCmd) input() (report.GenerateReportsInput, error) {
	input := report.GenerateReportsInput{RangeType: report.RangeType(gc.rangeType)}

	if gc.from != "" {
		from, err := time.Parse("2006-01-02", gc.from)
		if err != nil {
			return input, fmt.Errorf("invalid --from %q: %w", gc.from, err)
		}
		input.From = &from
	}
	if gc.to != "" {
		to, err := time.Parse("2006-01-02", gc.to)
		if err != nil {
			return input, fmt.Errorf("invalid --to %q: %w", gc.to, err)
		}
		input.To = &to
	}
	if gc.asOf != "" {
		asOf, err := time.Parse(time.RFC3339, gc.asOf)
		if err != nil {
			return input, fmt.Errorf("invalid --as-of %q: %w", gc.asOf, err)
		}
		input.AsOf = &asOf
	}
	return input, nil
}

func (gc *generateCmd) run(cmd *cobra.Command, _ []string) error {
	input, err := gc.input()
	if err != nil {
		return err
	}
	kind := report.Kind(gc.kind)
	if gc.kind != "" && !isKnownKind(kind) {
		return fmt.Errorf("unknown report %q, expected one of: %s", gc.kind, kindList())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	return withInjector(func(injector *dependency.Injector) error {
		bundle, err := injector.GenerateReports.Execute(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to generate reports: %w", err)
		}

		var out any = bundle
		if gc.kind != "" {
			out, _ = bundle.Select(kind)
		}
		return writeJSON(cmd.OutOrStdout(), out)
	})
}

// withInjector opens the configured database, migrates it and hands the
// wired dependencies to fn. The report cache is not used from the CLI.
func withInjector(fn func(*dependency.Injector) error) error {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Server.LogLevel})))

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		return err
	}

	cfg.Snapshot.Enabled = false
	return fn(dependency.NewInjector(cfg, database.DB(), nil, database.HealthCheck, nil))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isKnownKind(kind report.Kind) bool {
	for _, k := range report.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

func kindList() string {
	kinds := report.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
