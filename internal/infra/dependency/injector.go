// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/auction-ledger/backend/config"
	"github.com/auction-ledger/backend/internal/application/adapter"
	"github.com/auction-ledger/backend/internal/application/usecase/report"
	"github.com/auction-ledger/backend/internal/infra/server/router"
	"github.com/auction-ledger/backend/internal/integration/cache"
	"github.com/auction-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/auction-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/auction-ledger/backend/internal/integration/persistence"
	"github.com/auction-ledger/backend/internal/integration/scheduler"
)

const cachePingTimeout = 2 * time.Second

// Injector holds all application dependencies.
type Injector struct {
	Config            *config.Config
	DB                *gorm.DB
	Router            *router.Router
	Scheduler         *scheduler.Scheduler
	ReportRateLimiter *middleware.RateLimiter
	GenerateReports   *report.GenerateReportsUseCase
	SnapshotSummary   *report.SnapshotSummaryUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db may be nil, in which case only the health endpoint is served. A nil
// redisClient disables the report cache and a nil clock reads the wall clock.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	dbHealthChecker controller.HealthChecker,
	clock adapter.Clock,
) *Injector {
	injector := &Injector{Config: cfg, DB: db}

	var reportCache adapter.ReportCache
	var cacheHealthChecker controller.HealthChecker
	if redisClient != nil && cfg.Report.CacheEnabled {
		reportCache = cache.NewReportCache(redisClient, cfg.Report.CacheTTL)
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), cachePingTimeout)
			defer cancel()
			return reportCache.Ping(ctx) == nil
		}
	}

	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	var reportController *controller.ReportController
	if db != nil {
		// Create repositories
		purchaseRepo := persistence.NewPurchaseRepository(db)
		expenseRepo := persistence.NewExpenseRepository(db)
		snapshotRepo := persistence.NewReportSnapshotRepository(db)

		if clock == nil {
			clock = adapter.SystemClock{}
		}
		settings := ReportSettings(&cfg.Report)

		// Create report use cases
		injector.GenerateReports = report.NewGenerateReportsUseCase(purchaseRepo, expenseRepo, reportCache, clock, settings)
		injector.SnapshotSummary = report.NewSnapshotSummaryUseCase(injector.GenerateReports, snapshotRepo, clock)
		listSnapshotsUseCase := report.NewListSnapshotsUseCase(snapshotRepo)

		reportController = controller.NewReportController(injector.GenerateReports, listSnapshotsUseCase)

		if cfg.Snapshot.Enabled {
			injector.Scheduler = scheduler.NewScheduler(
				injector.SnapshotSummary,
				cfg.Snapshot.Schedule,
				cfg.Snapshot.Timeout,
				settings.Location,
			)
		}
	}

	injector.ReportRateLimiter = middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	injector.Router = router.NewRouter(healthController, reportController, injector.ReportRateLimiter)

	return injector
}

// ReportSettings maps the report configuration onto the engine settings.
func ReportSettings(cfg *config.ReportConfig) report.Settings {
	return report.Settings{
		Location: cfg.Location(),
		Policy: report.Policy{
			Aging: report.AgingPolicy{
				CurrentMaxDays:   cfg.AgingCurrentDays,
				ThirtyMaxDays:    cfg.AgingThirtyDays,
				SixtyMaxDays:     cfg.AgingSixtyDays,
				PastDueGraceDays: cfg.PastDueGraceDays,
			},
			TopN: cfg.TopN,
		},
	}
}
