package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

type Runtime struct {
	Entry       domain.ConfigEntry
	Client      *Client
	Coordinator *Coordinator
	Sensors     []Entity
	Device      domain.DeviceInfo
}

func (r *Runtime) close() {
	for _, sensor := range r.Sensors {
		sensor.Close()
	}
	r.Coordinator.Close()
}

// EntryFailure is an entry that could not be set up and the reason.
type EntryFailure struct {
	Entry domain.ConfigEntry
	Err   error
}

type IntegrationOptions struct {
	Portals         ports.PortalFactory
	AttributePolicy AttributePolicy
	// Model is published as the device model.
	Model string
	Log   zerolog.Logger
	Clock ports.Clock
}

// Integration is the host adapter: it sets up and tears down entries and owns
// the registry of loaded runtimes.
type Integration struct {
	opts IntegrationOptions
	log  zerolog.Logger

	mu       sync.RWMutex
	runtimes map[domain.EntryID]*Runtime
	failures map[domain.EntryID]EntryFailure
}

func NewIntegration(opts IntegrationOptions) *Integration {
	if opts.AttributePolicy == "" {
		opts.AttributePolicy = AttributePolicyAccumulate
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}

	return &Integration{
		opts:     opts,
		log:      opts.Log.With().Str("component", "integration").Logger(),
		runtimes: map[domain.EntryID]*Runtime{},
		failures: map[domain.EntryID]EntryFailure{},
	}
}

// SetupEntry logs in, runs the first refresh and registers the entry's
// sensors. Errors match ErrAuthFailed or ErrNotReady and are kept until the
// entry is set up again or unloaded.
func (i *Integration) SetupEntry(ctx context.Context, entry domain.ConfigEntry) (*Runtime, error) {
	runtime, err := i.setupEntry(ctx, entry)
	if err != nil {
		i.RecordFailure(entry, err)
		return nil, err
	}
	return runtime, nil
}

func (i *Integration) setupEntry(ctx context.Context, entry domain.ConfigEntry) (*Runtime, error) {
	log := i.log.With().Str("entry_id", string(entry.ID)).Logger()

	if !entry.HasUsername() || !entry.HasAccount() {
		return nil, fmt.Errorf("%w: entry %s has no username or account", ErrAuthFailed, entry.ID)
	}

	account, err := domain.ParseAccount(entry.Data.Account)
	if err != nil {
		return nil, fmt.Errorf("parse entry account: %w", err)
	}

	client := NewClient(i.opts.Portals(entry.Data.Username, entry.Data.Password))
	if _, err := client.Login(ctx); err != nil {
		if errors.Is(err, domain.ErrAuthentication) {
			log.Error().Err(err).Msg("login rejected")
			return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
		}
		log.Warn().Err(err).Msg("login failed")
		return nil, fmt.Errorf("%w: %w", ErrNotReady, err)
	}

	coordinator := NewCoordinator(account, client,
		WithCoordinatorLogger(log),
		WithCoordinatorClock(i.opts.Clock),
	)
	if err := coordinator.FirstRefresh(ctx); err != nil {
		coordinator.Close()
		return nil, err
	}

	runtime := &Runtime{
		Entry:       entry,
		Client:      client,
		Coordinator: coordinator,
		Sensors:     NewSensors(entry.ID, coordinator, i.opts.AttributePolicy),
		Device:      domain.NewDeviceInfo(entry.ID, account, i.opts.Model),
	}

	i.mu.Lock()
	previous, ok := i.runtimes[entry.ID]
	i.runtimes[entry.ID] = runtime
	delete(i.failures, entry.ID)
	i.mu.Unlock()
	if ok {
		previous.close()
	}

	log.Info().Str("account", account.Serial()).Int("sensors", len(runtime.Sensors)).Msg("entry set up")
	return runtime, nil
}

func (i *Integration) RecordFailure(entry domain.ConfigEntry, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.failures[entry.ID] = EntryFailure{Entry: entry, Err: err}
}

func (i *Integration) Failure(id domain.EntryID) (EntryFailure, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	failure, ok := i.failures[id]
	return failure, ok
}

func (i *Integration) UnloadEntry(id domain.EntryID) error {
	i.mu.Lock()
	runtime, ok := i.runtimes[id]
	delete(i.runtimes, id)
	delete(i.failures, id)
	i.mu.Unlock()

	if !ok {
		return ErrEntryNotLoaded
	}

	runtime.close()
	i.log.Info().Str("entry_id", string(id)).Msg("entry unloaded")
	return nil
}

func (i *Integration) ReloadEntry(ctx context.Context, entry domain.ConfigEntry) (*Runtime, error) {
	if err := i.UnloadEntry(entry.ID); err != nil && !errors.Is(err, ErrEntryNotLoaded) {
		return nil, err
	}
	return i.SetupEntry(ctx, entry)
}

func (i *Integration) Runtime(id domain.EntryID) (*Runtime, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	runtime, ok := i.runtimes[id]
	return runtime, ok
}

func (i *Integration) Runtimes() []*Runtime {
	i.mu.RLock()
	defer i.mu.RUnlock()

	runtimes := make([]*Runtime, 0, len(i.runtimes))
	for _, runtime := range i.runtimes {
		runtimes = append(runtimes, runtime)
	}
	sort.Slice(runtimes, func(a, b int) bool {
		return runtimes[a].Entry.ID < runtimes[b].Entry.ID
	})
	return runtimes
}

func (i *Integration) Close() {
	for _, runtime := range i.Runtimes() {
		_ = i.UnloadEntry(runtime.Entry.ID)
	}

	i.mu.Lock()
	clear(i.failures)
	i.mu.Unlock()
}

// Statuses reports every loaded runtime and every failed setup, ordered by
// entry id.
func (i *Integration) Statuses() []EntryStatus {
	runtimes := i.Runtimes()

	i.mu.RLock()
	failures := make([]EntryFailure, 0, len(i.failures))
	for id, failure := range i.failures {
		if _, loaded := i.runtimes[id]; !loaded {
			failures = append(failures, failure)
		}
	}
	i.mu.RUnlock()

	statuses := make([]EntryStatus, 0, len(runtimes)+len(failures))
	for _, runtime := range runtimes {
		statuses = append(statuses, RuntimeStatus(runtime))
	}
	for _, failure := range failures {
		statuses = append(statuses, SetupFailedStatus(failure.Entry, failure.Err))
	}
	sort.Slice(statuses, func(a, b int) bool {
		return statuses[a].ID < statuses[b].ID
	})
	return statuses
}
