package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/auction-ledger/backend/internal/application/adapter"
	"github.com/auction-ledger/backend/internal/domain/entity"
	domainerror "github.com/auction-ledger/backend/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakePurchaseRepo struct {
	purchases []*entity.Purchase
	version   string
	err       error
	calls     int
	lastFrom  time.Time
	lastTo    time.Time
}

func (r *fakePurchaseRepo) ListForRange(_ context.Context, from, to time.Time) ([]*entity.Purchase, error) {
	r.calls++
	r.lastFrom, r.lastTo = from, to
	return r.purchases, r.err
}

func (r *fakePurchaseRepo) RecordSetVersion(context.Context) (string, error) {
	return r.version, nil
}

type fakeExpenseRepo struct {
	expenses []*entity.Expense
	version  string
	err      error
}

func (r *fakeExpenseRepo) ListForRange(context.Context, time.Time, time.Time) ([]*entity.Expense, error) {
	return r.expenses, r.err
}

func (r *fakeExpenseRepo) RecordSetVersion(context.Context) (string, error) {
	return r.version, nil
}

type memoryCache struct {
	entries map[string][]byte
	getErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) error {
	if c.getErr != nil {
		return c.getErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return adapter.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func TestGenerateReportsUseCase_Execute(t *testing.T) {
	purchases, expenses := sampleRecords()
	clock := fixedClock{now: at(2024, time.March, 31)}

	t.Run("defaults to the current month", func(t *testing.T) {
		repo := &fakePurchaseRepo{purchases: purchases}
		uc := NewGenerateReportsUseCase(repo, &fakeExpenseRepo{expenses: expenses}, nil, clock, Settings{})

		bundle, err := uc.Execute(context.Background(), GenerateReportsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bundle.Range.Type != RangeMonth {
			t.Errorf("expected month range, got %s", bundle.Range.Type)
		}
		if !repo.lastFrom.Equal(march2024().From) || !repo.lastTo.Equal(march2024().To) {
			t.Errorf("expected repository to be queried with the resolved range, got %v - %v", repo.lastFrom, repo.lastTo)
		}
		if !bundle.GeneratedAt.Equal(clock.now) {
			t.Errorf("expected generatedAt %v, got %v", clock.now, bundle.GeneratedAt)
		}
		assertDecimal(t, "revenue", "607650", bundle.Summary.TotalRevenue)
	})

	t.Run("as of overrides the clock", func(t *testing.T) {
		asOf := at(2024, time.March, 5)
		uc := NewGenerateReportsUseCase(&fakePurchaseRepo{purchases: purchases}, &fakeExpenseRepo{}, nil, clock, Settings{})

		bundle, err := uc.Execute(context.Background(), GenerateReportsInput{AsOf: &asOf})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bundle.AccountsReceivable.AsOf.Equal(asOf) {
			t.Errorf("expected receivables aged at %v, got %v", asOf, bundle.AccountsReceivable.AsOf)
		}
	})

	t.Run("resolves in the configured location", func(t *testing.T) {
		loc := time.FixedZone("UTC+10", 10*60*60)
		// 20:00 UTC on March 31st is already April 1st at UTC+10.
		late := fixedClock{now: time.Date(2024, time.March, 31, 20, 0, 0, 0, time.UTC)}
		uc := NewGenerateReportsUseCase(&fakePurchaseRepo{}, &fakeExpenseRepo{}, nil, late, Settings{Location: loc})

		bundle, err := uc.Execute(context.Background(), GenerateReportsInput{RangeType: RangeMonth})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bundle.Range.From.Month() != time.April {
			t.Errorf("expected April range, got %v", bundle.Range.From)
		}
	})

	t.Run("custom dates are calendar days in the configured location", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*60*60)
		from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
		uc := NewGenerateReportsUseCase(&fakePurchaseRepo{}, &fakeExpenseRepo{}, nil, clock, Settings{Location: loc})

		bundle, err := uc.Execute(context.Background(), GenerateReportsInput{RangeType: RangeCustom, From: &from, To: &to})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantFrom := time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)
		if !bundle.Range.From.Equal(wantFrom) {
			t.Errorf("expected from %v, got %v", wantFrom, bundle.Range.From)
		}
		if bundle.Range.To.Day() != 2 {
			t.Errorf("expected range to end on March 2nd, got %v", bundle.Range.To)
		}
	})

	t.Run("rejects unknown range type", func(t *testing.T) {
		uc := NewGenerateReportsUseCase(&fakePurchaseRepo{}, &fakeExpenseRepo{}, nil, clock, Settings{})

		_, err := uc.Execute(context.Background(), GenerateReportsInput{RangeType: "fortnight"})

		var reportErr *domainerror.ReportError
		if !errors.As(err, &reportErr) {
			t.Fatalf("expected ReportError, got %v", err)
		}
		if reportErr.Code != domainerror.ErrCodeInvalidRangeType {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidRangeType, reportErr.Code)
		}
		if !domainerror.IsValidationError(err) {
			t.Error("expected a validation error")
		}
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		boom := errors.New("connection reset")
		uc := NewGenerateReportsUseCase(&fakePurchaseRepo{err: boom}, &fakeExpenseRepo{}, nil, clock, Settings{})

		_, err := uc.Execute(context.Background(), GenerateReportsInput{})
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped repository error, got %v", err)
		}
		if domainerror.IsValidationError(err) {
			t.Error("expected repository failure not to be a validation error")
		}
	})
}

func TestGenerateReportsUseCase_Cache(t *testing.T) {
	purchases, expenses := sampleRecords()
	clock := fixedClock{now: at(2024, time.March, 31)}

	t.Run("second call with the same now is served from cache", func(t *testing.T) {
		repo := &fakePurchaseRepo{purchases: purchases, version: "4:1"}
		cache := newMemoryCache()
		uc := NewGenerateReportsUseCase(repo, &fakeExpenseRepo{expenses: expenses, version: "3:1"}, cache, clock, Settings{})

		first, err := uc.Execute(context.Background(), GenerateReportsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.Execute(context.Background(), GenerateReportsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if repo.calls != 1 {
			t.Errorf("expected records loaded once, got %d", repo.calls)
		}
		if !second.Summary.NetProfit.Equal(first.Summary.NetProfit) {
			t.Errorf("expected cached net profit %s, got %s", first.Summary.NetProfit, second.Summary.NetProfit)
		}
	})

	t.Run("different now is never served from the same entry", func(t *testing.T) {
		repo := &fakePurchaseRepo{purchases: purchases, version: "4:1"}
		cache := newMemoryCache()
		uc := NewGenerateReportsUseCase(repo, &fakeExpenseRepo{version: "0:0"}, cache, clock, Settings{})

		early, late := at(2024, time.March, 30), at(2024, time.March, 31)
		if _, err := uc.Execute(context.Background(), GenerateReportsInput{AsOf: &early}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uc.Execute(context.Background(), GenerateReportsInput{AsOf: &late}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if repo.calls != 2 || len(cache.entries) != 2 {
			t.Errorf("expected two computations and two entries, got %d and %d", repo.calls, len(cache.entries))
		}
	})

	t.Run("record set change invalidates", func(t *testing.T) {
		repo := &fakePurchaseRepo{purchases: purchases, version: "4:1"}
		uc := NewGenerateReportsUseCase(repo, &fakeExpenseRepo{version: "0:0"}, newMemoryCache(), clock, Settings{})

		_, _ = uc.Execute(context.Background(), GenerateReportsInput{})
		repo.version = "5:2"
		_, _ = uc.Execute(context.Background(), GenerateReportsInput{})

		if repo.calls != 2 {
			t.Errorf("expected recomputation after version change, got %d loads", repo.calls)
		}
	})

	t.Run("cache failures fall back to computing", func(t *testing.T) {
		repo := &fakePurchaseRepo{purchases: purchases}
		cache := newMemoryCache()
		cache.getErr = errors.New("redis down")
		uc := NewGenerateReportsUseCase(repo, &fakeExpenseRepo{}, cache, clock, Settings{})

		bundle, err := uc.Execute(context.Background(), GenerateReportsInput{})
		if err != nil {
			t.Fatalf("expected cache failure to be tolerated, got %v", err)
		}
		if bundle == nil || repo.calls != 1 {
			t.Error("expected reports computed from the repositories")
		}
	})
}
