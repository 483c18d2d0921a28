package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps cron-based background jobs.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleInterval registers job to run every interval, rounded down to
// whole seconds.
func (s *Scheduler) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), job)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
