// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// DefaultTestModeCredits is the starting balance of every test-mode identity.
const DefaultTestModeCredits = 160

// accountCredits keeps account balances in the backend profile record.
type accountCredits struct {
	backend adapter.DataBackend
}

func NewAccountCredits(backend adapter.DataBackend) CreditBackend {
	return &accountCredits{backend: backend}
}

func (a *accountCredits) Load(ctx context.Context, id models.Identity) (models.Balance, error) {
	b, err := a.backend.GetCredits(ctx, id.ID)
	return b, mapAdapterError(err)
}

func (a *accountCredits) Store(ctx context.Context, id models.Identity, credits int, expectedVersion int64) (models.Balance, error) {
	b, err := a.backend.CompareAndSwapCredits(ctx, id.ID, models.CreditsUpdate{
		Credits:         credits,
		ExpectedVersion: expectedVersion,
	})
	return b, mapAdapterError(err)
}

// guestCredits keeps guest balances in the guest session record. The record
// has no version; the ledger's per-identity lock is the only writer.
type guestCredits struct {
	guests GuestSessionService
}

func NewGuestCredits(guests GuestSessionService) CreditBackend {
	return &guestCredits{guests: guests}
}

func (g *guestCredits) Load(ctx context.Context, id models.Identity) (models.Balance, error) {
	profile, err := g.activeSession(ctx, id)
	if err != nil {
		return models.Balance{}, err
	}
	return models.Balance{Credits: profile.Credits}, nil
}

// Store writes only when id is the active session; another guest's balance
// never lands in the active record.
func (g *guestCredits) Store(ctx context.Context, id models.Identity, credits int, _ int64) (models.Balance, error) {
	if _, err := g.activeSession(ctx, id); err != nil {
		return models.Balance{}, err
	}
	profile, err := g.guests.Update(ctx, models.GuestProfileUpdate{Credits: &credits})
	if err != nil {
		return models.Balance{}, err
	}
	return models.Balance{Credits: profile.Credits}, nil
}

func (g *guestCredits) activeSession(ctx context.Context, id models.Identity) (models.GuestProfile, error) {
	profile := g.guests.LoadOrCreate(ctx)
	if profile.SessionID != id.ID {
		return models.GuestProfile{}, fmt.Errorf("%w: guest %s is not the active session", app.ErrNotFound, id.ID)
	}
	return profile, nil
}

// testModeCredits redirects every balance to the local test-mode namespace,
// keyed by identity.
type testModeCredits struct {
	kv store.KV

	mu sync.Mutex
}

func NewTestModeCredits(kv store.KV) CreditBackend {
	return &testModeCredits{kv: kv}
}

func (t *testModeCredits) Load(ctx context.Context, id models.Identity) (models.Balance, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadLocked(ctx, id)
}

func (t *testModeCredits) Store(ctx context.Context, id models.Identity, credits int, expectedVersion int64) (models.Balance, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.loadLocked(ctx, id)
	if err != nil {
		return models.Balance{}, err
	}
	if current.Version != expectedVersion {
		return models.Balance{}, fmt.Errorf("%w: have %d, expected %d", app.ErrVersionConflict, current.Version, expectedVersion)
	}

	next := models.Balance{Credits: credits, Version: current.Version + 1}
	raw, err := json.Marshal(next)
	if err != nil {
		return models.Balance{}, err
	}
	if err := t.kv.Put(ctx, store.NamespaceTestMode, id.Key(), raw); err != nil {
		return models.Balance{}, err
	}
	return next, nil
}

func (t *testModeCredits) loadLocked(ctx context.Context, id models.Identity) (models.Balance, error) {
	raw, err := t.kv.Get(ctx, store.NamespaceTestMode, id.Key())
	if errors.Is(err, store.ErrNotFound) {
		return models.Balance{Credits: DefaultTestModeCredits}, nil
	}
	if err != nil {
		return models.Balance{}, err
	}

	var b models.Balance
	if err := json.Unmarshal(raw, &b); err != nil || b.Credits < 0 {
		// unreadable records restart from the default
		return models.Balance{Credits: DefaultTestModeCredits, Version: b.Version}, nil
	}
	return b, nil
}
