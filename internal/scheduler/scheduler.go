package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/metar-relay/internal/statusboard"
)

// Scheduler periodically refreshes the status board in-process, for
// deployments without an external cron.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher *statusboard.Refresher
	interval  time.Duration
}

// New creates a new Scheduler.
func New(refresher *statusboard.Refresher, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	// SingletonMode keeps a slow pass from overlapping the next one.
	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		log.Println("scheduler: running status board refresh")

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()

		if err := s.refresher.Refresh(ctx); err != nil {
			log.Printf("scheduler: status board refresh failed: %v", err)
			return
		}
		log.Println("scheduler: completed status board refresh")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
