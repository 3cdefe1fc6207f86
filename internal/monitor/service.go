// Package monitor implements the poll-diff-notify loop: it periodically reads
// every watched file, fingerprints the content and notifies on change.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	"github.com/aleister1102/jsonmonitor/internal/config"
	jsonlog "github.com/aleister1102/jsonmonitor/internal/logger"
	"github.com/aleister1102/jsonmonitor/internal/models"
	"github.com/aleister1102/jsonmonitor/internal/notifier"
	"github.com/rs/zerolog"
)

// CycleSummary counts per-target outcomes of one pass over the watch set.
type CycleSummary struct {
	CycleID   string
	Checked   int
	Seeded    int
	Unchanged int
	Changed   int
	Missing   int
	Failed    int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now for change timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMessageFormatter sets how change events are rendered for the notifier.
func WithMessageFormatter(format func(models.ChangeEvent) string) Option {
	return func(s *Service) { s.formatMessage = format }
}

// WithCheckInterval overrides the configured polling period.
func WithCheckInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Service watches a fixed set of files and reports content changes.
// Each Service owns its fingerprint store; instances share no state.
type Service struct {
	cfg       config.MonitorConfig
	targets   []models.WatchTarget
	store     *FingerprintStore
	fetcher   *FileFetcher
	processor *ContentProcessor
	tracker   *CycleTracker
	notifier  notifier.Notifier
	logger    zerolog.Logger

	interval      time.Duration
	now           func() time.Time
	formatMessage func(models.ChangeEvent) string

	// outstanding notification handles
	pending sync.WaitGroup

	mu       sync.Mutex
	cancel   context.CancelFunc
	loopDone chan struct{}
}

// NewService creates a Service for targets. The target slice is copied.
func NewService(cfg config.MonitorConfig, targets []models.WatchTarget, n notifier.Notifier, logger zerolog.Logger, opts ...Option) *Service {
	instanceLogger := jsonlog.Component(logger, "MonitoringService")

	s := &Service{
		cfg:       cfg,
		targets:   append([]models.WatchTarget(nil), targets...),
		store:     NewFingerprintStore(),
		fetcher:   NewFileFetcher(cfg.MaxFileSize(), instanceLogger),
		processor: NewContentProcessor(),
		tracker:   NewCycleTracker(cfg.MaxCycles),
		notifier:  n,
		logger:    instanceLogger,
		interval:  cfg.CheckInterval(),
		now:       time.Now,
	}
	s.formatMessage = func(event models.ChangeEvent) string {
		return notifier.FormatFileChangeMessage(event, cfg.TimestampLayout)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the fingerprint store for inspection.
func (s *Service) Store() *FingerprintStore {
	return s.store
}

// RunCycle performs one pass over the watch set. Errors are isolated per
// target and never abort the pass. ctx is handed to the notifier only; a
// started pass always completes.
func (s *Service) RunCycle(ctx context.Context) CycleSummary {
	summary := CycleSummary{CycleID: s.tracker.StartCycle()}
	cycleLogger := s.logger.With().Str("cycle_id", summary.CycleID).Logger()

	results := s.readAll()
	for _, res := range results {
		s.apply(ctx, cycleLogger, res, &summary)
	}

	event := cycleLogger.Debug()
	if s.tracker.HasChanges() {
		event = cycleLogger.Info().Strs("changed_targets", s.tracker.GetChangedTargets())
	}
	event.
		Int("checked", summary.Checked).
		Int("seeded", summary.Seeded).
		Int("changed", summary.Changed).
		Int("missing", summary.Missing).
		Int("failed", summary.Failed).
		Msg("Monitor cycle completed")
	return summary
}

// readResult is the outcome of reading and fingerprinting one target.
type readResult struct {
	target      models.WatchTarget
	fingerprint models.Fingerprint
	size        int
	err         error
}

// readAll reads every target, fanning out to a bounded worker pool when
// configured. Results keep watch-set order.
func (s *Service) readAll() []readResult {
	results := make([]readResult, len(s.targets))

	workers := s.cfg.MaxConcurrentChecks
	if workers > len(s.targets) {
		workers = len(s.targets)
	}
	if workers <= 1 {
		for i, target := range s.targets {
			results[i] = s.read(target)
		}
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.read(s.targets[i])
			}
		}()
	}
	for i := range s.targets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (s *Service) read(target models.WatchTarget) readResult {
	content, err := s.fetcher.Fetch(target.Path)
	if err != nil {
		return readResult{target: target, err: err}
	}
	return readResult{
		target:      target,
		fingerprint: s.processor.Fingerprint(content),
		size:        len(content),
	}
}

// apply compares one read result with the stored baseline. It runs only on
// the goroutine executing RunCycle.
func (s *Service) apply(ctx context.Context, logger zerolog.Logger, res readResult, summary *CycleSummary) {
	summary.Checked++
	target := res.target

	if res.err != nil {
		if errors.Is(res.err, errorwrapper.ErrNotFound) {
			summary.Missing++
			logger.Warn().Str("target", target.Name).Str("path", target.Path).Msg("Watched file not found, skipping")
			return
		}
		summary.Failed++
		logger.Error().Err(res.err).Str("target", target.Name).Str("path", target.Path).Msg("Failed to read watched file, skipping")
		return
	}

	previous, seen := s.store.Get(target.Name)
	switch {
	case !seen:
		summary.Seeded++
		s.store.Set(target.Name, res.fingerprint)
		logger.Debug().Str("target", target.Name).Str("fingerprint", res.fingerprint.Short()).Msg("Baseline recorded")
	case previous == res.fingerprint:
		summary.Unchanged++
	default:
		summary.Changed++
		s.tracker.AddChangedTarget(target.Name)
		event := models.ChangeEvent{
			TargetName:     target.Name,
			Path:           target.Path,
			DetectedAt:     s.now(),
			OldFingerprint: previous,
			NewFingerprint: res.fingerprint,
		}
		logger.Info().
			Str("target", target.Name).
			Str("path", target.Path).
			Str("old", previous.Short()).
			Str("new", res.fingerprint.Short()).
			Int("size", res.size).
			Msg("File content changed")
		s.dispatch(ctx, event)
		// the new content is the baseline whatever the notification outcome
		s.store.Set(target.Name, res.fingerprint)
	}
}

// dispatch hands the event to the notifier without waiting for delivery.
func (s *Service) dispatch(ctx context.Context, event models.ChangeEvent) {
	if s.notifier == nil {
		return
	}
	handle := s.notifier.Notify(ctx, s.formatMessage(event))
	if handle == nil {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if result, ok := <-handle; ok && !result.Success {
			s.logger.Debug().Err(result.Err).Str("target", event.TargetName).Msg("Change notification not delivered")
		}
	}()
}

// Start runs the scheduler in the background until ctx is done, Stop is
// called or the configured cycle limit is reached.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loopDone != nil {
		select {
		case <-s.loopDone:
		default:
			return errorwrapper.NewError("monitoring service already running")
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.loopDone = done

	scheduler := NewScheduler(s, s.interval, s.logger)
	go func() {
		defer close(done)
		defer cancel()
		scheduler.Run(runCtx)
	}()

	s.logger.Info().Int("targets", len(s.targets)).Dur("interval", s.interval).Msg("Monitoring service started")
	return nil
}

// Done is closed when the background loop exits. It is nil before Start.
func (s *Service) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopDone
}

// Stop cancels the loop, waits for the current pass to finish, then waits up
// to the configured shutdown timeout for outstanding notifications.
func (s *Service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()
	_ = s.Shutdown(ctx)
}

// Shutdown is Stop bounded by ctx instead of the configured timeout. It
// returns ctx's error when notifications were still outstanding.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.loopDone
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	err := s.waitPending(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Pending notifications did not finish before shutdown deadline")
	}
	s.logger.Info().Msg("Monitoring service stopped")
	return err
}

func (s *Service) waitPending(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
