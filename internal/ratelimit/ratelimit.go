// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit implements a per-key sliding-window request limiter.
//
// Each key keeps the timestamps of its accepted requests inside the trailing
// window. A request is accepted when fewer than max timestamps remain after
// pruning; accepting records the current time. The check and the record are
// atomic per key. State is process-local and never persisted.
package ratelimit

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/milleriumage/oi-friendly-voice/internal/metrics"
)

// DefaultMaxKeys bounds how many distinct keys are tracked. The least
// recently used key is evicted once the bound is reached, which forgets its
// history and can briefly admit extra requests for a cold key.
const DefaultMaxKeys = 4096

// Clock returns the current time. Tests inject a manual clock.
type Clock func() time.Time

// Limiter decides whether a keyed request may proceed.
type Limiter struct {
	windows *lru.Cache[string, *window]
	now     Clock
}

type window struct {
	mu    sync.Mutex
	stamp []time.Time
}

// Option configures a [Limiter].
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(l *Limiter) { l.now = c }
}

// New builds a limiter tracking at most maxKeys keys; non-positive means [DefaultMaxKeys].
func New(maxKeys int, opts ...Option) *Limiter {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	cache, _ := lru.New[string, *window](maxKeys)

	l := &Limiter{windows: cache, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether a request for key is within max requests per window
// and, if so, records it. A non-positive max or window rejects everything.
func (l *Limiter) Allow(key string, max int, per time.Duration) bool {
	if max <= 0 || per <= 0 {
		metrics.RateLimitDecisions.WithLabelValues("rejected").Inc()
		return false
	}

	w := &window{}
	if prev, ok, _ := l.windows.PeekOrAdd(key, w); ok {
		w = prev
		l.windows.Get(key) // touch recency
	}

	now := l.now()
	allowed := w.admit(now, max, per)

	if allowed {
		metrics.RateLimitDecisions.WithLabelValues("allowed").Inc()
	} else {
		metrics.RateLimitDecisions.WithLabelValues("rejected").Inc()
	}
	return allowed
}

// Remaining returns how many requests key may still make in the current window.
func (l *Limiter) Remaining(key string, max int, per time.Duration) int {
	w, ok := l.windows.Peek(key)
	if !ok {
		return max
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(l.now(), per)
	if n := max - len(w.stamp); n > 0 {
		return n
	}
	return 0
}

// Reset forgets the history of key.
func (l *Limiter) Reset(key string) {
	l.windows.Remove(key)
}

func (w *window) admit(now time.Time, max int, per time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.prune(now, per)
	if len(w.stamp) >= max {
		return false
	}
	w.stamp = append(w.stamp, now)
	return true
}

// prune drops timestamps at or before now-per. Stamps are appended in order,
// except when the clock goes backwards, so scan rather than binary search.
func (w *window) prune(now time.Time, per time.Duration) {
	cutoff := now.Add(-per)
	kept := w.stamp[:0]
	for _, ts := range w.stamp {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.stamp = kept
}
