package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/geoweather/internal/lookup"
)

// Scheduler periodically re-resolves the last successful location so the
// cached view model served for it stays fresh.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *lookup.Service
	interval  time.Duration
	timeout   time.Duration
}

// New creates a Scheduler refreshing every interval.
func New(service *lookup.Service, interval, timeout time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.service.RefreshLast(ctx); err != nil {
			// No last location yet is the normal cold-start case.
			log.Printf("scheduler: refresh skipped: %v", err)
			return
		}
		log.Println("scheduler: refreshed last location")
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
