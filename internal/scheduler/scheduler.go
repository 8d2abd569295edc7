package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Task is one full analysis run against the configured source.
type Task func() error

// Scheduler re-runs the analysis pipeline on a cron cadence, for series
// files that are refreshed in place (e.g. a nightly export).
type Scheduler struct {
	cron *cron.Cron
	task Task
}

// New creates a Scheduler around the given task.
func New(task Task) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		task: task,
	}
}

// Register adds the refresh task under the given cron expression
// (six-field, with seconds).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) run() {
	log.Info().Msg("running scheduled analysis")
	if err := s.task(); err != nil {
		log.Error().Err(err).Msg("scheduled analysis failed")
	}
}
