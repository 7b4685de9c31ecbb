package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SessionIdleTimeout is how long a view session may stay unused before the
// prune job drops it
const SessionIdleTimeout = 2 * time.Hour

// HealthChecker checks the upstream metadata API
type HealthChecker interface {
	Live() bool
	CheckHealth(ctx context.Context) error
}

// Pruner drops idle view sessions
type Pruner interface {
	Prune(maxIdle time.Duration) int
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron           *cron.Cron
	checker        HealthChecker
	pruner         Pruner
	healthSchedule string
	healthTimeout  time.Duration
	logger         *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(checker HealthChecker, pruner Pruner, healthSchedule string, healthTimeout time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		checker:        checker,
		pruner:         pruner,
		healthSchedule: healthSchedule,
		healthTimeout:  healthTimeout,
		logger:         logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Upstream health check, only useful with a live API
	if s.checker.Live() {
		_, err := s.cron.AddFunc(s.healthSchedule, func() {
			s.runHealthCheck()
		})
		if err != nil {
			return fmt.Errorf("failed to add health check job: %w", err)
		}
	}

	// Every hour: drop idle view sessions
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.runPrune()
	})
	if err != nil {
		return fmt.Errorf("failed to add prune job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("jobs", len(s.cron.Entries())).Info("Scheduler started")

	// Run initial health check immediately
	if s.checker.Live() {
		go s.runHealthCheck()
	}

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// runHealthCheck executes the health check job
func (s *Scheduler) runHealthCheck() {
	s.logger.Debug("Running upstream health check")
	ctx, cancel := context.WithTimeout(context.Background(), s.healthTimeout)
	defer cancel()

	if err := s.checker.CheckHealth(ctx); err != nil {
		s.logger.WithError(err).Warn("TMDB API unreachable, listings are served from the fallback dataset")
	} else {
		s.logger.Debug("TMDB API reachable")
	}
}

// runPrune executes the session prune job
func (s *Scheduler) runPrune() {
	if pruned := s.pruner.Prune(SessionIdleTimeout); pruned > 0 {
		s.logger.WithField("count", pruned).Info("Pruned idle view sessions")
	}
}
