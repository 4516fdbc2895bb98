// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// TrialOptions configures a [TrialTimer]. Zero fields take the defaults.
type TrialOptions struct {
	// Duration is the trial length in ticks. Default 300.
	Duration int
	// DebitEvery is how many ticks pass between debits. Default 60.
	DebitEvery int
	// DebitAmount is charged every DebitEvery ticks. Default 4.
	DebitAmount int
	// Reason labels the debits. Default "trial upkeep".
	Reason string
	// Tick is the tick period. Default one second.
	Tick   time.Duration
	Ticker collection.Ticker
	// OnDebit, when set, receives the outcome of every debit.
	OnDebit func(balance int, err error)
}

func (o *TrialOptions) setDefaults() {
	if o.Duration <= 0 {
		o.Duration = 300
	}
	if o.DebitEvery <= 0 {
		o.DebitEvery = 60
	}
	if o.DebitAmount <= 0 {
		o.DebitAmount = 4
	}
	if o.Reason == "" {
		o.Reason = "trial upkeep"
	}
	if o.Tick <= 0 {
		o.Tick = time.Second
	}
	if o.Ticker == nil {
		o.Ticker = func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		}
	}
}

// TrialTimer counts down a guest's trial and debits the ledger while it runs.
// Expiry is terminal until Reset.
type TrialTimer struct {
	identity models.Identity
	ledger   CreditLedger
	opts     TrialOptions

	mu      sync.Mutex
	state   models.TrialState
	expired chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	logger *logger.Logger
}

// NewTrialTimer builds an idle timer for a guest identity.
func NewTrialTimer(identity models.Identity, ledger CreditLedger, opts TrialOptions, log *logger.Logger) (*TrialTimer, error) {
	if !identity.IsGuest() || !identity.Valid() {
		return nil, ErrTrialRequiresGuest
	}
	opts.setDefaults()

	return &TrialTimer{
		identity: identity,
		ledger:   ledger,
		opts:     opts,
		state:    models.TrialState{RemainingSeconds: opts.Duration},
		expired:  make(chan struct{}),
		logger:   log.Component("trial"),
	}, nil
}

// Start launches the countdown. It is a no-op while running or once expired.
// The countdown stops when ctx is cancelled, Stop or Reset is called, or the
// trial expires.
func (t *TrialTimer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil || t.state.Expired {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	ticks, stop := t.opts.Ticker(t.opts.Tick)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticks:
				if done := t.tick(runCtx); done {
					return
				}
			}
		}
	}()
}

// tick advances the countdown by one and debits on every DebitEvery-th tick.
// It reports whether the trial expired.
func (t *TrialTimer) tick(ctx context.Context) bool {
	t.mu.Lock()
	if t.state.Expired {
		t.mu.Unlock()
		return true
	}

	t.state.RemainingSeconds--
	t.state.ElapsedWithinMinute++
	debit := t.state.ElapsedWithinMinute >= t.opts.DebitEvery
	if debit {
		t.state.ElapsedWithinMinute = 0
	}

	expired := t.state.RemainingSeconds <= 0
	if expired {
		t.state.RemainingSeconds = 0
		t.state.Expired = true
		close(t.expired)
	}
	t.mu.Unlock()

	if debit {
		balance, err := t.ledger.Subtract(ctx, t.identity, t.opts.DebitAmount, t.opts.Reason)
		if err != nil && ctx.Err() == nil {
			t.logger.Warn().Err(err).Str("identity", t.identity.Key()).Msg("trial debit failed")
		}
		if t.opts.OnDebit != nil && ctx.Err() == nil {
			t.opts.OnDebit(balance, err)
		}
	}

	if expired {
		t.logger.Info().Str("identity", t.identity.Key()).Msg("trial expired")
	}
	return expired
}

// Stop cancels the countdown, including an in-flight debit, and waits for it
// to exit. Safe to call when not running.
func (t *TrialTimer) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()
}

// Reset stops the countdown and reinitializes the trial. Call Start to run
// it again.
func (t *TrialTimer) Reset() {
	t.Stop()

	t.mu.Lock()
	t.state = models.TrialState{RemainingSeconds: t.opts.Duration}
	t.expired = make(chan struct{})
	t.mu.Unlock()
}

func (t *TrialTimer) State() models.TrialState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// CheckAction reports whether trial-gated actions are still allowed.
func (t *TrialTimer) CheckAction() bool {
	return !t.State().Expired
}

// Expired returns a channel closed when the trial expires. Reset replaces it.
func (t *TrialTimer) Expired() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

// FormatRemaining renders the remaining time as m:ss.
func (t *TrialTimer) FormatRemaining() string {
	return t.State().FormatRemaining()
}
