// Package scheduler runs the periodic report snapshot job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// SnapshotRunner takes one report snapshot.
type SnapshotRunner interface {
	Execute(ctx context.Context) (*entity.ReportSnapshot, error)
}

// Scheduler triggers report snapshots on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	runner   SnapshotRunner
	schedule string
	timeout  time.Duration
}

// NewScheduler creates a new scheduler. schedule is a standard five-field
// cron expression evaluated in loc.
func NewScheduler(runner SnapshotRunner, schedule string, timeout time.Duration, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		runner:   runner,
		schedule: schedule,
		timeout:  timeout,
	}
}

// Start registers the snapshot job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.takeSnapshot); err != nil {
		return fmt.Errorf("failed to schedule report snapshot %q: %w", s.schedule, err)
	}
	s.cron.Start()
	slog.Info("Report snapshot scheduler started", "schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	slog.Info("Stopping report snapshot scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) takeSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	slog.Info("Taking report snapshot")

	snapshot, err := s.runner.Execute(ctx)
	if err != nil {
		slog.Error("Failed to take report snapshot", "error", err)
		return
	}

	slog.Info("Report snapshot taken",
		"snapshotID", snapshot.ID,
		"duration", time.Since(start),
	)
}
