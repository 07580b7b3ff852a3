// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/auction-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/auction-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	reportController  *controller.ReportController
	reportRateLimiter *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	reportController *controller.ReportController,
	reportRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:  healthController,
		reportController:  reportController,
		reportRateLimiter: reportRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	// Report routes (only setup if the database is available)
	if r.reportController != nil {
		reports := v1.Group("/reports")
		if r.reportRateLimiter != nil {
			reports.Use(r.reportRateLimiter.Middleware())
		}
		{
			reports.GET("", r.reportController.GetReports)
			reports.GET("/snapshots", r.reportController.ListSnapshots)
			reports.GET("/:kind", r.reportController.GetReport)
		}
	}
}
