// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// manualTicker hands the timer a channel the test drives tick by tick.
type manualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{}, 4)}
}

func (m *manualTicker) start(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() { m.stopped <- struct{}{} }
}

func (m *manualTicker) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case m.ch <- time.Time{}:
		case <-time.After(time.Second):
			t.Fatalf("timer stopped consuming ticks after %d", i)
		}
	}
}

type debit struct {
	balance int
	err     error
}

func newTestTrial(t *testing.T, ledger CreditLedger, ticker *manualTicker) (*TrialTimer, chan debit) {
	t.Helper()
	debits := make(chan debit, 16)
	timer, err := NewTrialTimer(guestID, ledger, TrialOptions{
		Ticker:  ticker.start,
		OnDebit: func(balance int, err error) { debits <- debit{balance, err} },
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(timer.Stop)
	return timer, debits
}

func waitDebit(t *testing.T, debits <-chan debit) debit {
	t.Helper()
	select {
	case d := <-debits:
		return d
	case <-time.After(time.Second):
		t.Fatal("expected a debit")
		return debit{}
	}
}

func TestTrialTimer_DebitsEveryMinute(t *testing.T) {
	credits := newMemCredits(map[string]int{guestID.Key(): 40})
	ticker := newManualTicker()
	timer, debits := newTestTrial(t, newTestLedger(credits, relaxedPolicy()), ticker)

	timer.Start(context.Background())

	ticker.tick(t, 60)
	assert.Equal(t, debit{balance: 36}, waitDebit(t, debits))

	ticker.tick(t, 60)
	assert.Equal(t, debit{balance: 32}, waitDebit(t, debits))

	assert.Equal(t, 32, credits.credits(guestID))
	state := timer.State()
	assert.Equal(t, 180, state.RemainingSeconds)
	assert.False(t, state.Expired)
	assert.Equal(t, "3:00", timer.FormatRemaining())
	assert.True(t, timer.CheckAction())
}

func TestTrialTimer_ExpiresAfterDuration(t *testing.T) {
	credits := newMemCredits(map[string]int{guestID.Key(): 40})
	ticker := newManualTicker()
	timer, debits := newTestTrial(t, newTestLedger(credits, relaxedPolicy()), ticker)

	timer.Start(context.Background())
	ticker.tick(t, 300)

	select {
	case <-timer.Expired():
	case <-time.After(time.Second):
		t.Fatal("trial did not expire")
	}
	for i := 0; i < 5; i++ {
		waitDebit(t, debits)
	}

	assert.Equal(t, 20, credits.credits(guestID))
	assert.False(t, timer.CheckAction())
	assert.Equal(t, "0:00", timer.FormatRemaining())

	// expiry is terminal, Start does nothing
	timer.Start(context.Background())
	select {
	case ticker.ch <- time.Time{}:
		t.Fatal("expired timer consumed a tick")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTrialTimer_ResetRestartsCountdown(t *testing.T) {
	credits := newMemCredits(map[string]int{guestID.Key(): 40})
	ticker := newManualTicker()
	timer, _ := newTestTrial(t, newTestLedger(credits, relaxedPolicy()), ticker)

	timer.Start(context.Background())
	ticker.tick(t, 300)
	<-timer.Expired()

	timer.Reset()
	state := timer.State()
	assert.Equal(t, models.TrialState{RemainingSeconds: 300}, state)
	assert.True(t, timer.CheckAction())

	timer.Start(context.Background())
	ticker.tick(t, 1)
	assert.Eventually(t, func() bool { return timer.State().RemainingSeconds == 299 }, time.Second, 5*time.Millisecond)
}

func TestTrialTimer_StopHaltsTicks(t *testing.T) {
	credits := newMemCredits(map[string]int{guestID.Key(): 40})
	ticker := newManualTicker()
	timer, debits := newTestTrial(t, newTestLedger(credits, relaxedPolicy()), ticker)

	timer.Start(context.Background())
	ticker.tick(t, 30)
	timer.Stop()

	select {
	case <-ticker.stopped:
	case <-time.After(time.Second):
		t.Fatal("ticker was not stopped")
	}
	assert.Equal(t, 270, timer.State().RemainingSeconds)
	assert.Empty(t, debits)
	assert.Equal(t, 40, credits.credits(guestID))

	// stopping twice is harmless
	timer.Stop()
}

func TestTrialTimer_DebitFailureIsReported(t *testing.T) {
	credits := newMemCredits(map[string]int{guestID.Key(): 2})
	ticker := newManualTicker()
	timer, debits := newTestTrial(t, newTestLedger(credits, relaxedPolicy()), ticker)

	timer.Start(context.Background())
	ticker.tick(t, 60)

	d := waitDebit(t, debits)
	require.Error(t, d.err)
	assert.Equal(t, 2, credits.credits(guestID))
	// the countdown keeps running
	assert.True(t, timer.CheckAction())
}

func TestNewTrialTimer_RequiresGuest(t *testing.T) {
	_, err := NewTrialTimer(accountID, nil, TrialOptions{}, logger.Nop())
	require.ErrorIs(t, err, ErrTrialRequiresGuest)

	_, err = NewTrialTimer(models.Guest(""), nil, TrialOptions{}, logger.Nop())
	require.ErrorIs(t, err, ErrTrialRequiresGuest)
}
