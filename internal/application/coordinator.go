package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

type SnapshotSource interface {
	Snapshot() (domain.Snapshot, bool)
	Subscribe(listener func(domain.Snapshot)) (unsubscribe func())
}

type CoordinatorOption func(*Coordinator)

func WithCoordinatorLogger(log zerolog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.log = log
	}
}

func WithCoordinatorClock(clock ports.Clock) CoordinatorOption {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// Coordinator owns the cached snapshot of one account. It has no timer; the
// host calls Refresh.
type Coordinator struct {
	account domain.Account
	client  *Client
	log     zerolog.Logger
	clock   ports.Clock

	refreshMu sync.Mutex

	baseCtx context.Context
	cancel  context.CancelFunc

	// mu guards the cached state and listeners.
	mu           sync.RWMutex
	snapshot     *domain.Snapshot
	lastErr      error
	needsReauth  bool
	lastSuccess  time.Time
	listeners    map[int]func(domain.Snapshot)
	nextListener int
}

var _ SnapshotSource = (*Coordinator)(nil)

func NewCoordinator(account domain.Account, client *Client, opts ...CoordinatorOption) *Coordinator {
	baseCtx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		account:   account,
		client:    client,
		log:       zerolog.Nop(),
		clock:     ports.SystemClock{},
		baseCtx:   baseCtx,
		cancel:    cancel,
		listeners: map[int]func(domain.Snapshot){},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "coordinator").Str("account", account.Serial()).Logger()

	return c
}

func (c *Coordinator) Account() domain.Account {
	return c.account
}

// Refresh fetches consumption then bills and replaces the snapshot. On failure
// the previous snapshot is kept and a *RefreshError is returned.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.baseCtx.Err() != nil {
		return ErrCoordinatorClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.baseCtx, cancel)
	defer stop()

	consumption, err := c.client.GetConsumption(ctx, c.account)
	if err != nil {
		return c.fail(err)
	}

	bills, err := c.client.GetBills(ctx, c.account)
	if err != nil {
		return c.fail(err)
	}

	snapshot := domain.NewSnapshot(consumption, bills)
	c.log.Debug().
		Int64("quota", snapshot.Quota).
		Float64("total_consumption", snapshot.TotalConsumption).
		Int64("outstanding_balance", snapshot.OutstandingBalance).
		Int("unpaid_bills", len(snapshot.StateAttributes.OutstandingBalance)).
		Msg("refreshed snapshot")

	c.mu.Lock()
	if c.baseCtx.Err() != nil {
		c.mu.Unlock()
		return ErrCoordinatorClosed
	}
	c.snapshot = &snapshot
	c.lastErr = nil
	c.needsReauth = false
	c.lastSuccess = c.clock.Now()
	listeners := make([]func(domain.Snapshot), 0, len(c.listeners))
	for i := 0; i < c.nextListener; i++ {
		if listener, ok := c.listeners[i]; ok {
			listeners = append(listeners, listener)
		}
	}
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}

	return nil
}

func (c *Coordinator) fail(err error) error {
	refreshErr := newRefreshError(err)

	c.mu.Lock()
	if c.baseCtx.Err() != nil {
		c.mu.Unlock()
		return ErrCoordinatorClosed
	}
	c.lastErr = refreshErr
	if refreshErr.Kind == domain.KindAuthentication {
		c.needsReauth = true
	}
	c.mu.Unlock()

	if refreshErr.Kind == domain.KindAuthentication {
		c.log.Error().Err(err).Msg("portal rejected credentials, re-authentication required")
	} else {
		c.log.Warn().Err(err).Str("kind", refreshErr.Kind.String()).Msg("refresh failed, keeping cached values")
	}

	return refreshErr
}

// FirstRefresh is the setup-time refresh. It returns an error matching
// ErrAuthFailed or ErrNotReady.
func (c *Coordinator) FirstRefresh(ctx context.Context) error {
	err := c.Refresh(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAuthFailed), errors.Is(err, ErrCoordinatorClosed):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
}

func (c *Coordinator) Snapshot() (domain.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return domain.Snapshot{}, false
	}
	return *c.snapshot, true
}

func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Coordinator) NeedsReauth() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.needsReauth
}

func (c *Coordinator) LastSuccess() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSuccess
}

// Subscribe registers a listener called after every successful refresh, in
// refresh order.
func (c *Coordinator) Subscribe(listener func(domain.Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextListener
	c.nextListener++
	c.listeners[id] = listener

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close cancels an in-flight refresh, whose result is then discarded.
// Further refreshes return ErrCoordinatorClosed.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
}
