// Package jobs runs the server's periodic maintenance on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Cleaner deletes analytics records older than a cutoff.
type Cleaner interface {
	Cleanup(ctx context.Context, before time.Time) (int64, error)
}

// Sweeper closes views left idle.
type Sweeper interface {
	Sweep(now time.Time, idle time.Duration) int
}

type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Retention deletes records older than months. It is what the scheduled job
// and the admin "cleanup now" button both run.
func Retention(ctx context.Context, db Cleaner, months int, now time.Time) (int64, error) {
	removed, err := db.Cleanup(ctx, now.AddDate(0, -months, 0))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Printf("Privacy cleanup: Removed %d records older than %d months", removed, months)
	}
	return removed, nil
}

// AddRetention schedules Retention.
func (s *Scheduler) AddRetention(spec string, db Cleaner, months int) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := Retention(context.Background(), db, months, time.Now()); err != nil {
			log.Printf("Error cleaning up old visitor data: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule retention %q: %w", spec, err)
	}
	return nil
}

// AddSweep schedules closing of views idle longer than idle.
func (s *Scheduler) AddSweep(spec string, views Sweeper, idle time.Duration) error {
	_, err := s.cron.AddFunc(spec, func() {
		if n := views.Sweep(time.Now(), idle); n > 0 {
			log.Printf("view sweep: closed %d idle views", n)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule sweep %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
