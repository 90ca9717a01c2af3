package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/pkg/clock"
)

// Job is a scheduled unit of work. Interval jobs fire on a fixed ticker;
// daily jobs fire once per calendar day at DailyAt (business timezone).
type Job struct {
	Name     string
	Interval time.Duration
	DailyAt  *time.Time // wall-clock time of day; only hour/minute are used
	Fn       func(ctx context.Context) error
}

// Scheduler manages scheduled jobs.
type Scheduler struct {
	jobs   []Job
	clk    clock.Clock
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler(clk clock.Clock) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		clk:    clk,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers an interval job.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Fn: fn})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// AddDailyJob registers a job that runs once per day at "HH:MM" in the
// scheduler's business timezone.
func (s *Scheduler) AddDailyJob(name string, at string, fn func(ctx context.Context) error) error {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, DailyAt: &t, Fn: fn})
	slog.Info("Cron daily job registered", "name", name, "at", at)
	return nil
}

// Start begins running all scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		if job.DailyAt != nil {
			go s.runDailyJob(job)
		} else {
			go s.runIntervalJob(job)
		}
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) runIntervalJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.executeJob(job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(job)
		}
	}
}

func (s *Scheduler) runDailyJob(job Job) {
	defer s.wg.Done()

	for {
		wait := s.untilNextRun(*job.DailyAt)
		timer := time.NewTimer(wait)

		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(job)
		}
	}
}

// untilNextRun computes the wait until the next occurrence of the given
// wall-clock time in the business timezone.
func (s *Scheduler) untilNextRun(at time.Time) time.Duration {
	now := s.clk.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, s.clk.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}
