package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/courtside/standings-sync/internal/config"
	"github.com/courtside/standings-sync/internal/pipeline"
)

// Scheduler runs the sync pipeline periodically in resident mode. A failed
// scheduled run is logged but does not bring the process down; the next
// trigger retries from scratch.
type Scheduler struct {
	cfg    *config.Config
	runner *pipeline.Runner
	cron   *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, runner *pipeline.Runner) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		runner: runner,
		cron:   cron.New(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.RefreshCron, func() {
		log.Info().Msg("Running scheduled sync...")
		if err := s.runner.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Scheduled sync failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.RefreshCron).
		Msg("Sync scheduled")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	log.Info().Msg("Scheduler stopped")
}
