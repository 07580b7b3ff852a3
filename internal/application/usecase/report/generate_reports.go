package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/auction-ledger/backend/internal/application/adapter"
	domainerror "github.com/auction-ledger/backend/internal/domain/error"
)

// Settings configures how reports are resolved and computed.
type Settings struct {
	// Location is where ranges are resolved and periods bucketed. Defaults to UTC.
	Location *time.Location
	Policy   Policy
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// GenerateReportsInput represents the input for generating reports.
type GenerateReportsInput struct {
	RangeType RangeType
	// From and To are calendar dates; only their year, month and day are used.
	From *time.Time
	To   *time.Time
	// AsOf pins the instant receivables are aged against. The clock is used when nil.
	AsOf *time.Time
}

// GenerateReportsUseCase loads the records of a range and runs the engine over them.
type GenerateReportsUseCase struct {
	purchaseRepo adapter.PurchaseRepository
	expenseRepo  adapter.ExpenseRepository
	cache        adapter.ReportCache
	clock        adapter.Clock
	settings     Settings
}

// NewGenerateReportsUseCase creates a new GenerateReportsUseCase instance.
// cache may be nil to disable caching.
func NewGenerateReportsUseCase(
	purchaseRepo adapter.PurchaseRepository,
	expenseRepo adapter.ExpenseRepository,
	cache adapter.ReportCache,
	clock adapter.Clock,
	settings Settings,
) *GenerateReportsUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	return &GenerateReportsUseCase{
		purchaseRepo: purchaseRepo,
		expenseRepo:  expenseRepo,
		cache:        cache,
		clock:        clock,
		settings:     settings,
	}
}

// Execute resolves the range, captures now once and returns the report bundle.
func (uc *GenerateReportsUseCase) Execute(ctx context.Context, input GenerateReportsInput) (*ReportBundle, error) {
	if input.RangeType == "" {
		input.RangeType = RangeMonth
	}
	if !input.RangeType.IsValid() {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidRangeType,
			domainerror.ErrInvalidRangeType.Error(),
			domainerror.ErrInvalidRangeType,
		)
	}

	now := uc.clock.Now()
	if input.AsOf != nil {
		now = *input.AsOf
	}
	loc := uc.settings.location()
	now = now.In(loc)
	dateRange := ResolveRange(input.RangeType, now, calendarDate(input.From, loc), calendarDate(input.To, loc))

	var cacheKey string
	if uc.cache != nil {
		key, err := uc.cacheKey(ctx, dateRange, now)
		if err != nil {
			return nil, err
		}
		cacheKey = key

		var cached ReportBundle
		switch err := uc.cache.Get(ctx, cacheKey, &cached); {
		case err == nil:
			slog.Debug("Report cache hit", "key", cacheKey)
			return &cached, nil
		case errors.Is(err, adapter.ErrCacheMiss):
			slog.Debug("Report cache miss", "key", cacheKey)
		default:
			slog.Warn("Failed to read report cache", "error", err, "key", cacheKey)
		}
	}

	purchases, err := uc.purchaseRepo.ListForRange(ctx, dateRange.From, dateRange.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	expenses, err := uc.expenseRepo.ListForRange(ctx, dateRange.From, dateRange.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	slog.Debug("Generating reports",
		"range", dateRange.Type,
		"from", dateRange.From,
		"to", dateRange.To,
		"purchases", len(purchases),
		"expenses", len(expenses),
	)

	bundle := GenerateReports(ReportInput{
		Range:     dateRange,
		Purchases: purchases,
		Expenses:  expenses,
		Now:       now,
		Policy:    uc.settings.Policy,
	})

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, bundle); err != nil {
			slog.Warn("Failed to store reports in cache", "error", err, "key", cacheKey)
		}
	}
	return bundle, nil
}

// calendarDate reads the date of t as midnight in loc.
func calendarDate(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return &d
}

// cacheKey binds a cached bundle to the range, both record set versions and
// the exact now used for aging.
func (uc *GenerateReportsUseCase) cacheKey(ctx context.Context, r DateRange, now time.Time) (string, error) {
	purchaseVersion, err := uc.purchaseRepo.RecordSetVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read purchase version: %w", err)
	}
	expenseVersion, err := uc.expenseRepo.RecordSetVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read expense version: %w", err)
	}
	return strings.Join([]string{
		"reports",
		string(r.Type),
		r.From.Format(time.RFC3339Nano),
		r.To.Format(time.RFC3339Nano),
		purchaseVersion,
		expenseVersion,
		now.Format(time.RFC3339Nano),
	}, ":"), nil
}
