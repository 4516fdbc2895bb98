// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/eventbus"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/metrics"
	"github.com/milleriumage/oi-friendly-voice/internal/optimistic"
	"github.com/milleriumage/oi-friendly-voice/internal/ratelimit"
	"github.com/milleriumage/oi-friendly-voice/internal/validators"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// LedgerPolicy holds the ledger's rate limits and retry bound.
type LedgerPolicy struct {
	SubtractMax    int
	SubtractWindow time.Duration
	// RefreshMax bounds backend reads of account balances; a limited
	// refresh returns the cached balance.
	RefreshMax    int
	RefreshWindow time.Duration
	// MaxConflictRetries bounds compare-and-swap retries per mutation.
	MaxConflictRetries int
}

func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{
		SubtractMax:        20,
		SubtractWindow:     time.Minute,
		RefreshMax:         10,
		RefreshWindow:      time.Minute,
		MaxConflictRetries: 3,
	}
}

// LedgerBackends selects persistence per identity kind. When TestMode is set
// it receives every identity; the choice is made once, at construction.
type LedgerBackends struct {
	Account  CreditBackend
	Guest    CreditBackend
	TestMode CreditBackend
}

const (
	backendAccount  = "account"
	backendGuest    = "guest"
	backendTestMode = "test_mode"
)

// ledgerAccount is the in-memory side of one identity's balance. mu is held
// for the whole of every operation on the identity.
type ledgerAccount struct {
	mu      sync.Mutex
	cell    *optimistic.Cell[int]
	version int64
	loaded  bool
}

type creditLedger struct {
	backends LedgerBackends
	policy   LedgerPolicy
	limiter  *ratelimit.Limiter
	accounts *xsync.MapOf[string, *ledgerAccount]
	bus      *eventbus.Bus[models.LedgerEvent]
	now      func() time.Time

	logger *logger.Logger
}

// NewCreditLedger builds the ledger. limiter may be shared with other
// components; keys are prefixed by identity.
func NewCreditLedger(backends LedgerBackends, limiter *ratelimit.Limiter, policy LedgerPolicy, log *logger.Logger) CreditLedger {
	if limiter == nil {
		limiter = ratelimit.New(0)
	}
	return &creditLedger{
		backends: backends,
		policy:   policy,
		limiter:  limiter,
		accounts: xsync.NewMapOf[string, *ledgerAccount](),
		bus:      eventbus.New[models.LedgerEvent](),
		now:      time.Now,
		logger:   log.Component("ledger"),
	}
}

func (l *creditLedger) Subscribe(buffer int) (*eventbus.Subscription[models.LedgerEvent], error) {
	return l.bus.Subscribe(buffer)
}

func (l *creditLedger) Balance(ctx context.Context, id models.Identity) (int, error) {
	if !id.Valid() {
		return 0, ErrInvalidIdentity
	}

	acc := l.account(id)
	acc.mu.Lock()
	defer acc.mu.Unlock()

	backend, kind := l.backendFor(id)
	if acc.loaded && kind == backendAccount &&
		!l.limiter.Allow(id.Key()+":balance", l.policy.RefreshMax, l.policy.RefreshWindow) {
		l.record("balance", "cached")
		return acc.cell.Get(), nil
	}

	if err := l.refreshLocked(ctx, acc, backend, id); err != nil {
		l.record("balance", "failed")
		return acc.cell.Get(), err
	}
	l.record("balance", "ok")
	return acc.cell.Get(), nil
}

func (l *creditLedger) Add(ctx context.Context, id models.Identity, amount int) (int, error) {
	if err := validators.ValidateAmount(amount); err != nil {
		l.record("add", "invalid")
		return 0, err
	}
	if !id.Valid() {
		return 0, ErrInvalidIdentity
	}

	acc := l.account(id)
	acc.mu.Lock()
	defer acc.mu.Unlock()

	backend, _ := l.backendFor(id)
	if err := l.refreshIfColdLocked(ctx, acc, backend, id); err != nil {
		l.record("add", "failed")
		return acc.cell.Get(), fmt.Errorf("%w: %w", app.ErrPersistenceFailed, err)
	}

	balance, err := l.commitLocked(ctx, acc, backend, id, amount)
	if err != nil {
		l.record("add", "failed")
		return balance, err
	}

	l.record("add", "ok")
	l.publish(models.LedgerCredited, id, amount, "", balance)
	return balance, nil
}

func (l *creditLedger) Subtract(ctx context.Context, id models.Identity, amount int, reason string) (int, error) {
	if err := validators.ValidateAmount(amount); err != nil {
		l.record("subtract", "invalid")
		return 0, err
	}
	if !id.Valid() {
		return 0, ErrInvalidIdentity
	}

	acc := l.account(id)
	acc.mu.Lock()
	defer acc.mu.Unlock()

	backend, _ := l.backendFor(id)
	if err := l.refreshIfColdLocked(ctx, acc, backend, id); err != nil {
		l.record("subtract", "failed")
		return acc.cell.Get(), fmt.Errorf("%w: %w", app.ErrPersistenceFailed, err)
	}

	current := acc.cell.Get()
	if amount > current {
		l.record("subtract", "insufficient")
		return current, app.ErrInsufficientCredits
	}
	if !l.limiter.Allow(id.Key()+":subtract", l.policy.SubtractMax, l.policy.SubtractWindow) {
		l.record("subtract", "rate_limited")
		return current, app.ErrRateLimited
	}

	balance, err := l.commitLocked(ctx, acc, backend, id, -amount)
	if err != nil {
		if errors.Is(err, app.ErrInsufficientCredits) {
			l.record("subtract", "insufficient")
		} else {
			l.record("subtract", "failed")
		}
		return balance, err
	}

	l.record("subtract", "ok")
	l.logger.Debug().
		Str("identity", id.Key()).
		Int("amount", amount).
		Str("reason", reason).
		Int("balance", balance).
		Msg("credits debited")

	l.publish(models.LedgerDebited, id, amount, reason, balance)
	if balance == 0 {
		l.publish(models.LedgerExhausted, id, 0, reason, 0)
	}
	return balance, nil
}

// commitLocked applies delta to the in-memory balance, then persists it with
// compare-and-swap. A lost race reloads the balance and retries on top of it,
// up to the policy bound. On failure the in-memory value is rolled back, or
// replaced by the freshest authoritative read if one was made.
func (l *creditLedger) commitLocked(ctx context.Context, acc *ledgerAccount, backend CreditBackend, id models.Identity, delta int) (int, error) {
	target := acc.cell.Get() + delta
	if target < 0 {
		target = 0
	}
	version := acc.version

	var committed models.Balance
	var fresh *models.Balance

	err := optimistic.Run(ctx, acc.cell, optimistic.AddFloored(delta, 0), func(ctx context.Context) error {
		for attempt := 0; ; attempt++ {
			b, err := backend.Store(ctx, id, target, version)
			if err == nil {
				committed = b
				return nil
			}
			if !errors.Is(err, app.ErrVersionConflict) || attempt >= l.policy.MaxConflictRetries {
				return err
			}

			metrics.LedgerConflictRetries.Inc()
			latest, err := backend.Load(ctx, id)
			if err != nil {
				return err
			}
			fresh = &latest
			version = latest.Version
			if latest.Credits+delta < 0 {
				return app.ErrInsufficientCredits
			}
			target = latest.Credits + delta
		}
	})

	if err != nil {
		if fresh != nil {
			acc.cell.Set(fresh.Credits)
			acc.version = fresh.Version
		}
		if errors.Is(err, app.ErrInsufficientCredits) {
			return acc.cell.Get(), err
		}
		l.logger.Err(err).Str("identity", id.Key()).Int("delta", delta).Msg("balance write failed, rolled back")
		return acc.cell.Get(), fmt.Errorf("%w: %w", app.ErrPersistenceFailed, err)
	}

	acc.cell.Set(committed.Credits)
	acc.version = committed.Version
	return committed.Credits, nil
}

func (l *creditLedger) refreshIfColdLocked(ctx context.Context, acc *ledgerAccount, backend CreditBackend, id models.Identity) error {
	if acc.loaded {
		return nil
	}
	return l.refreshLocked(ctx, acc, backend, id)
}

// refreshLocked reads the authoritative balance. A failed read keeps the
// previous in-memory value.
func (l *creditLedger) refreshLocked(ctx context.Context, acc *ledgerAccount, backend CreditBackend, id models.Identity) error {
	b, err := backend.Load(ctx, id)
	if err != nil {
		l.logger.Warn().Err(err).Str("identity", id.Key()).Bool("cached", acc.loaded).Msg("balance read failed")
		return err
	}
	acc.cell.Set(b.Credits)
	acc.version = b.Version
	acc.loaded = true
	return nil
}

func (l *creditLedger) account(id models.Identity) *ledgerAccount {
	acc, _ := l.accounts.LoadOrCompute(id.Key(), func() *ledgerAccount {
		return &ledgerAccount{cell: optimistic.NewCell(0, nil)}
	})
	return acc
}

func (l *creditLedger) backendFor(id models.Identity) (CreditBackend, string) {
	switch {
	case l.backends.TestMode != nil:
		return l.backends.TestMode, backendTestMode
	case id.IsGuest():
		return l.backends.Guest, backendGuest
	default:
		return l.backends.Account, backendAccount
	}
}

func (l *creditLedger) publish(kind models.LedgerEventKind, id models.Identity, amount int, reason string, balance int) {
	l.bus.Publish(models.LedgerEvent{
		Kind:     kind,
		Identity: id,
		Amount:   amount,
		Reason:   reason,
		Balance:  balance,
		At:       l.now(),
	})
}

func (l *creditLedger) record(op, result string) {
	metrics.LedgerOperations.WithLabelValues(op, result).Inc()
}
