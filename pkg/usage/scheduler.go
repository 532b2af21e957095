package usage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/aihub/hubadmin/pkg/models"
)

// DefaultSnapshotSchedule records a usage snapshot once a day at midnight.
const DefaultSnapshotSchedule = "0 0 * * *"

// Scheduler records periodic usage snapshots and keeps the most recent one
// available for the API.
type Scheduler struct {
	reporter *Reporter
	logger   *slog.Logger
	cron     *cron.Cron
	schedule string

	mutex  sync.RWMutex
	latest *models.UsageReport
}

func NewScheduler(reporter *Reporter, schedule string, logger *slog.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSnapshotSchedule
	}

	return &Scheduler{
		reporter: reporter,
		logger:   logger.With("module", "usage_scheduler"),
		schedule: schedule,
	}
}

// Start validates the schedule and begins recording snapshots. An initial
// snapshot is taken immediately so Latest never starts empty.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid snapshot schedule '%s': %w", s.schedule, err)
	}

	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.snapshot(ctx)
	}); err != nil {
		return fmt.Errorf("failed to register snapshot job: %w", err)
	}

	s.snapshot(ctx)
	s.cron.Start()
	s.logger.Info("Usage snapshot scheduler started", "schedule", s.schedule)

	return nil
}

// Stop halts the scheduler and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}

	<-s.cron.Stop().Done()
	s.logger.Info("Usage snapshot scheduler stopped")
}

// Latest returns the most recent snapshot, or nil before the first one.
func (s *Scheduler) Latest() *models.UsageReport {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.latest
}

func (s *Scheduler) snapshot(ctx context.Context) {
	report, err := s.reporter.Report(ctx)
	if err != nil {
		s.logger.Error("Failed to record usage snapshot", "error", err)

		return
	}

	s.mutex.Lock()
	s.latest = report
	s.mutex.Unlock()

	s.logger.Info("Recorded usage snapshot", "generated_at", report.GeneratedAt)
}
