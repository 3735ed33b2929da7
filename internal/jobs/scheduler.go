// Package jobs runs the background jobs of the application on a cron
// schedule. Currently the only job is the daily portfolio snapshot.
package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mkuiper/portfolio-tracker/internal/service"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron            *cron.Cron
	snapshotService *service.SnapshotService
}

// NewScheduler creates a new Scheduler with the provided service dependency.
func NewScheduler(snapshotService *service.SnapshotService) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		snapshotService: snapshotService,
	}
}

// Start registers the daily snapshot job on the given cron schedule and
// starts the runner.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.captureDailySnapshot); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Snapshot scheduler started (schedule %q)", schedule)
	return nil
}

// Stop stops the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// captureDailySnapshot rolls up the current holdings into today's snapshot.
// Re-runs on the same date replace the earlier snapshot, so a missed or
// duplicated firing is harmless.
func (s *Scheduler) captureDailySnapshot() {
	date := time.Now().UTC().Truncate(24 * time.Hour)

	snapshot, err := s.snapshotService.CaptureSnapshot(date)
	if err != nil {
		log.Printf("Daily snapshot failed: %v", err)
		return
	}

	log.Printf("Captured daily snapshot %s (%d positions, value %.2f)",
		date.Format("2006-01-02"), len(snapshot.Positions), snapshot.TotalCurrentValue)
}
