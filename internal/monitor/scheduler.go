package monitor

import (
	"context"
	"time"

	jsonlog "github.com/aleister1102/jsonmonitor/internal/logger"
	"github.com/rs/zerolog"
)

// Scheduler drives a Service: one immediate pass, then one pass per tick.
type Scheduler struct {
	service  *Service
	interval time.Duration
	logger   zerolog.Logger
}

// NewScheduler creates a scheduler for service ticking every interval.
func NewScheduler(service *Service, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		interval: interval,
		logger:   jsonlog.Component(logger, "MonitorScheduler"),
	}
}

// Run blocks until ctx is done or the cycle limit is reached. Cancellation is
// observed between passes; a pass in progress is always finished.
func (s *Scheduler) Run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.logger.Info().Int("targets", len(s.service.targets)).Msg("Performing initial check to seed baselines")
	s.service.RunCycle(ctx)
	if !s.service.tracker.ShouldContinue() {
		s.logger.Info().Int("cycles", s.service.tracker.CycleCount()).Msg("Cycle limit reached, scheduler stopping")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Scheduler context cancelled, main loop stopping")
			return
		case <-ticker.C:
			// a tick and a stop can arrive together; stopping wins
			if ctx.Err() != nil {
				s.logger.Info().Msg("Scheduler context cancelled, main loop stopping")
				return
			}
			s.service.RunCycle(ctx)
			if !s.service.tracker.ShouldContinue() {
				s.logger.Info().Int("cycles", s.service.tracker.CycleCount()).Msg("Cycle limit reached, scheduler stopping")
				return
			}
		}
	}
}
