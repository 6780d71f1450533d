package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper closes idle chart views.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
	Len() int
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron        *cron.Cron
	Sessions    Sweeper
	IdleTimeout time.Duration
}

// NewScheduler creates a new Scheduler.
func NewScheduler(sessions Sweeper, idleTimeout time.Duration) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Sessions:    sessions,
		IdleTimeout: idleTimeout,
	}
}

// RegisterAll registers the idle sweep.
func (s *Scheduler) RegisterAll(sweepCron string) error {
	if _, err := s.Cron.AddFunc(sweepCron, func() { s.sweepTask() }); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running sweep.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunSweepNow executes the sweep immediately and returns the closed count.
func (s *Scheduler) RunSweepNow() int {
	return s.sweepTask()
}

func (s *Scheduler) sweepTask() int {
	closed := s.Sessions.Sweep(s.IdleTimeout)
	if closed > 0 {
		log.Printf("[INFO] idle sweep closed %d views, %d still open", closed, s.Sessions.Len())
	}
	return closed
}
