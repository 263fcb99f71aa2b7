package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"github.com/rs/zerolog"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

const (
	OutcomeSuccess      = "success"
	OutcomeAuthFailed   = "auth_failed"
	OutcomeUpdateFailed = "update_failed"
)

type RefreshRecorder interface {
	ObserveRefresh(entryID domain.EntryID, outcome string, elapsed time.Duration)
}

type NoopRecorder struct{}

func (NoopRecorder) ObserveRefresh(domain.EntryID, string, time.Duration) {}

// EntrySource lists the configured entries with passwords loaded, and those
// that could not be loaded.
type EntrySource interface {
	LoadEntries(ctx context.Context) ([]domain.ConfigEntry, []EntryFailure, error)
}

type SchedulerOptions struct {
	Integration *Integration
	Entries     EntrySource
	Interval    time.Duration
	Recorder    RefreshRecorder
	Clock       ports.Clock
	Log         zerolog.Logger
}

type Scheduler struct {
	opts SchedulerOptions
	log  zerolog.Logger
	cron *gron.Cron
	// opsMu keeps ticks from overlapping.
	opsMu sync.Mutex
}

func NewScheduler(opts SchedulerOptions) *Scheduler {
	if opts.Recorder == nil {
		opts.Recorder = NoopRecorder{}
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}

	return &Scheduler{
		opts: opts,
		log:  opts.Log.With().Str("component", "scheduler").Logger(),
	}
}

// SetupPending sets up every entry that is not loaded yet and returns how
// many are loaded afterwards.
func (s *Scheduler) SetupPending(ctx context.Context) (int, error) {
	if _, err := s.setupPending(ctx); err != nil {
		return 0, err
	}
	return len(s.opts.Integration.Runtimes()), nil
}

// setupPending sets up new entries, reloads entries changed since they were
// loaded and unloads removed ones. Entries whose credentials were rejected
// wait until they are updated.
func (s *Scheduler) setupPending(ctx context.Context) (map[domain.EntryID]struct{}, error) {
	entries, failures, err := s.opts.Entries.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}

	configured := map[domain.EntryID]struct{}{}
	for _, failure := range failures {
		configured[failure.Entry.ID] = struct{}{}
		s.log.Error().Err(failure.Err).Str("entry_id", string(failure.Entry.ID)).Msg("load entry")
		if _, ok := s.opts.Integration.Runtime(failure.Entry.ID); !ok {
			s.opts.Integration.RecordFailure(failure.Entry, failure.Err)
		}
	}

	loaded := map[domain.EntryID]struct{}{}
	for _, entry := range entries {
		configured[entry.ID] = struct{}{}
		log := s.log.With().Str("entry_id", string(entry.ID)).Str("title", entry.Title).Logger()

		var err error
		if runtime, ok := s.opts.Integration.Runtime(entry.ID); ok {
			if runtime.Entry.UpdatedAt.Equal(entry.UpdatedAt) {
				continue
			}
			log.Info().Msg("entry changed, reloading")
			_, err = s.opts.Integration.ReloadEntry(ctx, entry)
		} else {
			if failure, ok := s.opts.Integration.Failure(entry.ID); ok && errors.Is(failure.Err, ErrAuthFailed) && failure.Entry.UpdatedAt.Equal(entry.UpdatedAt) {
				log.Debug().Msg("waiting for re-authentication")
				continue
			}
			_, err = s.opts.Integration.SetupEntry(ctx, entry)
		}

		switch {
		case err == nil:
			loaded[entry.ID] = struct{}{}
		case errors.Is(err, ErrAuthFailed):
			log.Error().Err(err).Msgf("entry needs re-authentication, run: ogero entry reauth %s", entry.ID)
		case errors.Is(err, ErrNotReady):
			log.Warn().Err(err).Msg("entry not ready, retrying on next tick")
		default:
			log.Error().Err(err).Msg("entry setup failed")
		}
	}

	for _, status := range s.opts.Integration.Statuses() {
		if _, ok := configured[status.ID]; ok {
			continue
		}
		_ = s.opts.Integration.UnloadEntry(status.ID)
		s.log.Info().Str("entry_id", string(status.ID)).Msg("entry removed, unloaded")
	}

	return loaded, nil
}

func (s *Scheduler) Tick(ctx context.Context) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	justLoaded, err := s.setupPending(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("load entries")
	}

	for _, runtime := range s.opts.Integration.Runtimes() {
		if _, ok := justLoaded[runtime.Entry.ID]; ok {
			continue
		}
		if runtime.Coordinator.NeedsReauth() {
			s.log.Debug().Str("entry_id", string(runtime.Entry.ID)).Msg("refresh skipped, waiting for re-authentication")
			continue
		}
		s.refresh(ctx, runtime)
	}
}

func (s *Scheduler) refresh(ctx context.Context, runtime *Runtime) {
	log := s.log.With().Str("entry_id", string(runtime.Entry.ID)).Logger()
	started := s.opts.Clock.Now()

	err := runtime.Coordinator.Refresh(ctx)
	elapsed := s.opts.Clock.Now().Sub(started)

	switch {
	case err == nil:
		s.opts.Recorder.ObserveRefresh(runtime.Entry.ID, OutcomeSuccess, elapsed)
		log.Debug().Dur("elapsed", elapsed).Msg("refresh succeeded")
	case errors.Is(err, ErrCoordinatorClosed):
		log.Debug().Msg("refresh skipped, entry unloaded")
	case errors.Is(err, ErrAuthFailed):
		s.opts.Recorder.ObserveRefresh(runtime.Entry.ID, OutcomeAuthFailed, elapsed)
		log.Error().Err(err).Msgf("entry needs re-authentication, run: ogero entry reauth %s", runtime.Entry.ID)
	default:
		s.opts.Recorder.ObserveRefresh(runtime.Entry.ID, OutcomeUpdateFailed, elapsed)
		log.Warn().Err(err).Msg("refresh failed, keeping cached values")
	}
}

// Start schedules Tick every interval until Stop. The first tick runs after
// one interval; call SetupPending beforehand for an immediate setup.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.opts.Interval), func() {
		s.Tick(ctx)
	})
	s.cron.Start()
	s.log.Info().Dur("interval", s.opts.Interval).Msg("scheduler started")
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
