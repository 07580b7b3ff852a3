// Package main is the entry point for the Auction Ledger reporting API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/auction-ledger/backend/config"
	"github.com/auction-ledger/backend/internal/infra/cache"
	"github.com/auction-ledger/backend/internal/infra/db"
	"github.com/auction-ledger/backend/internal/infra/dependency"
	"github.com/auction-ledger/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel,
	}))
	slog.SetDefault(logger)

	// Amounts are served as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	slog.Info("Starting Auction Ledger reporting API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"timezone", cfg.Report.Timezone,
	)

	// Initialize database connection
	var gormDB *gorm.DB
	dbHealthChecker := func() bool { return false }

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
	} else {
		if err := database.AutoMigrate(model.All()...); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		gormDB = database.DB()
		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize the report cache
	var redisClient *redis.Client
	if cfg.Report.CacheEnabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, serving reports without cache", "error", err)
			redisClient = nil
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}
	}

	injector := dependency.NewInjector(cfg, gormDB, redisClient, dbHealthChecker, nil)
	if gormDB == nil {
		slog.Warn("Report endpoints not initialized due to missing database connection")
	}

	// Start the snapshot scheduler
	if injector.Scheduler != nil {
		if err := injector.Scheduler.Start(); err != nil {
			slog.Error("Failed to start report snapshot scheduler", "error", err)
			os.Exit(1)
		}
		defer injector.Scheduler.Stop()
	}

	stopCleanup := make(chan struct{})
	go injector.ReportRateLimiter.RunCleanup(stopCleanup)
	defer close(stopCleanup)

	// Setup router
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
