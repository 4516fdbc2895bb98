// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package eventbus is an in-process, non-blocking publish/subscribe bus.
//
// Publish never blocks on a slow subscriber. When a subscriber's buffer is
// full the oldest pending event is discarded to make room, so a subscriber
// always converges on the most recent state. Subscribers hold a
// [Subscription] handle and must Close it when done.
package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrBusClosed is returned when subscribing to a closed bus.
var ErrBusClosed = errors.New("bus is closed")

// DefaultBuffer is the channel capacity used when Subscribe gets a non-positive size.
const DefaultBuffer = 16

// Stats is a snapshot of bus counters.
type Stats struct {
	Published   uint64
	Delivered   uint64
	Dropped     uint64
	Subscribers int
}

// Bus fans events of type T out to subscribers.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription[T]
	nextID uint64
	closed bool

	published atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// Subscription is a handle on a bus registration.
type Subscription[T any] struct {
	id   uint64
	bus  *Bus[T]
	ch   chan T
	mu   sync.Mutex // serializes sends with close
	once sync.Once
	done bool
}

func New[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[uint64]*Subscription[T])}
}

// Subscribe registers a subscriber with a buffer of the given size.
func (b *Bus[T]) Subscribe(buffer int) (*Subscription[T], error) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	b.nextID++
	s := &Subscription[T]{id: b.nextID, bus: b, ch: make(chan T, buffer)}
	b.subs[s.id] = s
	return s, nil
}

// Publish delivers ev to every subscriber without blocking.
// Publishing on a closed bus is a no-op.
func (b *Bus[T]) Publish(ev T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	b.published.Add(1)

	for _, s := range b.subs {
		if s.offer(ev) {
			b.delivered.Add(1)
		} else {
			b.dropped.Add(1)
		}
	}
}

// Stats returns current counters.
func (b *Bus[T]) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		Published:   b.published.Load(),
		Delivered:   b.delivered.Load(),
		Dropped:     b.dropped.Load(),
		Subscribers: n,
	}
}

// Close detaches all subscribers and closes their channels.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := b.subs
	b.subs = make(map[uint64]*Subscription[T])
	b.mu.Unlock()

	for _, s := range subs {
		s.shut()
	}
}

// C returns the receive channel. It is closed when the subscription or the bus closes.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s.id)
	s.bus.mu.Unlock()

	s.shut()
}

// offer sends ev, discarding the oldest queued event when the buffer is full.
// It reports false when an older event had to be dropped.
func (s *Subscription[T]) offer(ev T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return false
	}

	select {
	case s.ch <- ev:
		return true
	default:
	}

	select {
	case <-s.ch:
	default:
	}

	select {
	case s.ch <- ev:
	default:
	}
	return false
}

func (s *Subscription[T]) shut() {
	s.once.Do(func() {
		s.mu.Lock()
		s.done = true
		close(s.ch)
		s.mu.Unlock()
	})
}
